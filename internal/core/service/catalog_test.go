package service

import (
	"cmdbot/internal/core/domain"
	"cmdbot/internal/core/port"
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRegistry struct {
	infos []domain.CommandInfo
}

func (m *mockRegistry) Register(_ port.Command) {}

func (m *mockRegistry) Get(_ string) (port.Command, error) {
	return nil, domain.ErrCommandNotFound
}

func (m *mockRegistry) ListCommands() []string {
	names := make([]string, len(m.infos))
	for i, info := range m.infos {
		names[i] = info.Name
	}
	return names
}

func (m *mockRegistry) Describe() []domain.CommandInfo {
	return m.infos
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Publish(ctx context.Context, info domain.CommandInfo) error {
	return m.Called(ctx, info).Error(0)
}

func (m *mockCatalog) Lookup(ctx context.Context, name string) (domain.CommandInfo, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.CommandInfo), args.Error(1)
}

func (m *mockCatalog) List(ctx context.Context) ([]domain.CommandInfo, error) {
	args := m.Called(ctx)
	infos, _ := args.Get(0).([]domain.CommandInfo)
	return infos, args.Error(1)
}

func (m *mockCatalog) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// memoryCatalog keeps entries between publish runs, like the SQLite store does.
type memoryCatalog struct {
	entries map[string]string
}

func (m *memoryCatalog) Publish(_ context.Context, info domain.CommandInfo) error {
	m.entries[info.Name] = info.Help
	return nil
}

func (m *memoryCatalog) Lookup(_ context.Context, name string) (domain.CommandInfo, error) {
	help, ok := m.entries[name]
	if !ok {
		return domain.CommandInfo{}, domain.ErrCommandNotFound
	}
	return domain.CommandInfo{Name: name, Help: help}, nil
}

func (m *memoryCatalog) List(_ context.Context) ([]domain.CommandInfo, error) {
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	slices.Sort(names)

	infos := make([]domain.CommandInfo, len(names))
	for i, name := range names {
		infos[i] = domain.CommandInfo{Name: name, Help: m.entries[name]}
	}
	return infos, nil
}

func (m *memoryCatalog) Delete(_ context.Context, name string) error {
	delete(m.entries, name)
	return nil
}

type recordingAdvertiser struct {
	advertised [][]domain.CommandInfo
}

func (r *recordingAdvertiser) Advertise(_ context.Context, commands []domain.CommandInfo) error {
	r.advertised = append(r.advertised, commands)
	return nil
}

type mockAdvertiser struct {
	mock.Mock
}

func (m *mockAdvertiser) Advertise(ctx context.Context, commands []domain.CommandInfo) error {
	return m.Called(ctx, commands).Error(0)
}

func TestPublishCommands(t *testing.T) {
	infos := []domain.CommandInfo{
		{Name: "/chat", Help: "talk"},
		{Name: "/meeting", Help: "schedule"},
	}
	published := append([]domain.CommandInfo{{Name: "/legacy", Help: "old"}}, infos...)

	tests := []struct {
		name      string
		setup     func(c *mockCatalog, a *mockAdvertiser)
		wantErr   bool
		advertise bool
	}{
		{
			name: "publishes, drops stale entries and advertises",
			setup: func(c *mockCatalog, a *mockAdvertiser) {
				c.On("Publish", mock.Anything, infos[0]).Return(nil).Once()
				c.On("Publish", mock.Anything, infos[1]).Return(nil).Once()
				c.On("List", mock.Anything).Return(published, nil).Once()
				c.On("Delete", mock.Anything, "/legacy").Return(nil).Once()
				a.On("Advertise", mock.Anything, infos).Return(nil).Once()
			},
			advertise: true,
		},
		{
			name: "delete failure",
			setup: func(c *mockCatalog, _ *mockAdvertiser) {
				c.On("Publish", mock.Anything, mock.Anything).Return(nil).Twice()
				c.On("List", mock.Anything).Return(published, nil).Once()
				c.On("Delete", mock.Anything, "/legacy").Return(errors.New("readonly")).Once()
			},
			wantErr: true,
		},
		{
			name: "publish failure stops",
			setup: func(c *mockCatalog, _ *mockAdvertiser) {
				c.On("Publish", mock.Anything, infos[0]).Return(errors.New("disk full")).Once()
			},
			wantErr: true,
		},
		{
			name: "list failure",
			setup: func(c *mockCatalog, _ *mockAdvertiser) {
				c.On("Publish", mock.Anything, mock.Anything).Return(nil).Twice()
				c.On("List", mock.Anything).Return(nil, errors.New("locked")).Once()
			},
			wantErr: true,
		},
		{
			name: "advertise failure",
			setup: func(c *mockCatalog, a *mockAdvertiser) {
				c.On("Publish", mock.Anything, mock.Anything).Return(nil).Twice()
				c.On("List", mock.Anything).Return(infos, nil).Once()
				a.On("Advertise", mock.Anything, infos).Return(errors.New("telegram down")).Once()
			},
			wantErr:   true,
			advertise: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := new(mockCatalog)
			a := new(mockAdvertiser)
			tt.setup(c, a)

			err := PublishCommands(t.Context(), &mockRegistry{infos: infos}, c, a)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			c.AssertExpectations(t)
			a.AssertExpectations(t)
			if !tt.advertise {
				a.AssertNotCalled(t, "Advertise", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestPublishCommandsWithoutAdvertiser(t *testing.T) {
	c := new(mockCatalog)
	c.On("Publish", mock.Anything, mock.Anything).Return(nil)
	c.On("List", mock.Anything).Return([]domain.CommandInfo{}, nil)

	err := PublishCommands(t.Context(), &mockRegistry{infos: []domain.CommandInfo{{Name: "/debug"}}}, c, nil)
	require.NoError(t, err)
	assert.Len(t, c.Calls, 2)
}

func TestPublishCommandsForgetsUnregisteredCommands(t *testing.T) {
	catalog := &memoryCatalog{entries: map[string]string{}}
	advertiser := &recordingAdvertiser{}

	first := &mockRegistry{infos: []domain.CommandInfo{
		{Name: "/chat", Help: "talk"},
		{Name: "/meeting", Help: "schedule"},
	}}
	require.NoError(t, PublishCommands(t.Context(), first, catalog, advertiser))

	second := &mockRegistry{infos: []domain.CommandInfo{
		{Name: "/meeting", Help: "schedule"},
	}}
	require.NoError(t, PublishCommands(t.Context(), second, catalog, advertiser))

	require.Len(t, advertiser.advertised, 2)
	assert.Equal(t, first.infos, advertiser.advertised[0])
	assert.Equal(t, second.infos, advertiser.advertised[1])

	_, err := catalog.Lookup(t.Context(), "/chat")
	require.ErrorIs(t, err, domain.ErrCommandNotFound)
}
