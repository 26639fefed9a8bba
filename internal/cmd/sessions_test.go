package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/cc-orchestrator/internal/adapters/tmux/tmuxtest"
	"github.com/renato0307/cc-orchestrator/internal/config"
	"github.com/renato0307/cc-orchestrator/internal/domain"
)

type testEnv struct {
	confirms  []string
	container *Container
	home      string
	out       *bytes.Buffer
	server    *tmuxtest.Server
}

// newTestEnv wires a Container over the in-memory tmux server and a
// journal in a temporary home. Commands run non-interactive and refuse
// confirmations unless a test says otherwise.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv("TMUX", "")

	return newTestEnvOn(t, home, tmuxtest.NewServer())
}

func newTestEnvOn(t *testing.T, home string, server *tmuxtest.Server) *testEnv {
	t.Helper()

	container, err := NewContainer(ContainerOptions{
		JournalPath: filepath.Join(home, "journal.db"),
		LayoutsFile: filepath.Join(home, "layouts.yaml"),
		TmuxClient:  server,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	env := &testEnv{container: container, home: home, out: &bytes.Buffer{}, server: server}
	container.Stdout = env.out
	container.Lock = nil
	container.Interactive = func() bool { return false }
	container.Confirm = func(title, _ string) (bool, error) {
		env.confirms = append(env.confirms, title)
		return false, nil
	}
	return env
}

func (e *testEnv) create(t *testing.T, name, instance string) {
	t.Helper()

	cmd := &SessionsCreateCmd{Dir: t.TempDir(), Format: "table", Instance: instance, Name: name}
	require.NoError(t, cmd.Run(e.container, &CLI{}))
}

func TestSessionsCreate_PrintsSummary(t *testing.T) {
	env := newTestEnv(t)

	env.create(t, "demo", "i1")

	assert.Contains(t, env.out.String(), "Session 'cc-orchestrator-demo' created with layout 'default'")
	assert.True(t, env.server.Exists("cc-orchestrator-demo"))
	assert.NotNil(t, env.container.SessionService.GetSessionInfo("demo"))
}

func TestSessionsCreate_JSON(t *testing.T) {
	env := newTestEnv(t)

	cmd := &SessionsCreateCmd{Dir: t.TempDir(), Format: "json", Layout: "claude", Name: "demo"}
	require.NoError(t, cmd.Run(env.container, &CLI{}))

	var info domain.SessionInfo
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &info))
	assert.Equal(t, "cc-orchestrator-demo", info.SessionName)
	assert.Equal(t, "claude", info.LayoutTemplate)
	assert.Equal(t, []string{"claude", "shell"}, info.Windows)
}

func TestSessionsCreate_UsesSettingsDefaultLayout(t *testing.T) {
	env := newTestEnv(t)
	cli := &CLI{}
	cli.SetSettings(&config.Settings{DefaultLayout: "claude"})

	cmd := &SessionsCreateCmd{Dir: t.TempDir(), Format: "table", Name: "demo"}
	require.NoError(t, cmd.Run(env.container, cli))

	assert.Equal(t, []string{"claude", "shell"}, env.server.WindowNames("cc-orchestrator-demo"))
}

func TestSessionsCreate_Conflict(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "demo", "")

	cmd := &SessionsCreateCmd{Dir: t.TempDir(), Format: "table", Name: "cc-orchestrator-demo"}
	err := cmd.Run(env.container, &CLI{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionExists)
}

func TestSessionsCreate_LockFailure(t *testing.T) {
	env := newTestEnv(t)
	env.container.Lock = func() (func(), error) { return nil, errors.New("locked") }

	cmd := &SessionsCreateCmd{Dir: t.TempDir(), Format: "table", Name: "demo"}
	err := cmd.Run(env.container, &CLI{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
	assert.False(t, env.server.Exists("cc-orchestrator-demo"))
}

func TestSessionsCreate_AttachWithoutTerminal(t *testing.T) {
	env := newTestEnv(t)

	cmd := &SessionsCreateCmd{Attach: true, Dir: t.TempDir(), Format: "table", Name: "demo"}
	err := cmd.Run(env.container, &CLI{})

	assert.ErrorIs(t, err, errNoTerminal)
	assert.True(t, env.server.Exists("cc-orchestrator-demo"))
}

func TestSessionsAttach_InsideTmux(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "demo", "")
	t.Setenv("TMUX", "/tmp/tmux-1000/default,1,0")

	require.NoError(t, (&SessionsAttachCmd{Name: "demo"}).Run(env.container))

	info := env.container.SessionService.GetSessionInfo("demo")
	require.NotNil(t, info)
	assert.Equal(t, 1, info.AttachedClients)
}

func TestSessionsAttach_InsideTmuxMissing(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("TMUX", "/tmp/tmux-1000/default,1,0")

	err := (&SessionsAttachCmd{Name: "ghost"}).Run(env.container)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestSessionsDetach(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "demo", "")
	env.server.SetAttached("cc-orchestrator-demo", 2)

	require.NoError(t, (&SessionsDetachCmd{Name: "demo"}).Run(env.container))

	live, err := env.server.GetSession(context.Background(), "cc-orchestrator-demo")
	require.NoError(t, err)
	assert.Zero(t, live.AttachedClients)
	assert.Contains(t, env.out.String(), "Session 'cc-orchestrator-demo' detached")
}

func TestSessionsDetach_Missing(t *testing.T) {
	env := newTestEnv(t)

	err := (&SessionsDetachCmd{Name: "ghost"}).Run(env.container)

	assert.Error(t, err)
}

func TestSessionsList_Table(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "demo", "i1")
	env.server.AddSession("cc-orchestrator-stray", "/tmp", 0)
	env.server.AddSession("personal", "/tmp", 0)

	require.NoError(t, (&SessionsListCmd{Format: "table"}).Run(env.container))

	out := env.out.String()
	assert.Contains(t, out, "cc-orchestrator-demo")
	assert.Contains(t, out, "cc-orchestrator-stray")
	assert.NotContains(t, out, "personal")
}

func TestSessionsList_TrackedOnlyJSON(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "demo", "i1")
	env.server.AddSession("cc-orchestrator-stray", "/tmp", 0)

	require.NoError(t, (&SessionsListCmd{Format: "json", TrackedOnly: true}).Run(env.container))

	var views []sessionView
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "cc-orchestrator-demo", views[0].SessionName)
	assert.True(t, views[0].Tracked)
	assert.Equal(t, "i1", views[0].InstanceID)
}

func TestSessionsList_Empty(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, (&SessionsListCmd{Format: "table"}).Run(env.container))

	assert.Equal(t, "No sessions\n", env.out.String())
}

func TestSessionsInfo(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "demo", "i1")

	require.NoError(t, (&SessionsInfoCmd{Format: "json", Name: "demo"}).Run(env.container))

	var view sessionView
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &view))
	assert.Equal(t, "cc-orchestrator-demo", view.SessionName)
	assert.True(t, view.Tracked)
}

func TestSessionsInfo_NotFound(t *testing.T) {
	env := newTestEnv(t)

	err := (&SessionsInfoCmd{Format: "table", Name: "ghost"}).Run(env.container)

	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionsOrphans(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "demo", "")
	env.server.AddSession("cc-orchestrator-stray", "/tmp", 0)

	require.NoError(t, (&SessionsOrphansCmd{Format: "json"}).Run(env.container))

	var orphans []string
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &orphans))
	assert.Equal(t, []string{"cc-orchestrator-stray"}, orphans)
}

func TestSessionsOrphans_None(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, (&SessionsOrphansCmd{Format: "table"}).Run(env.container))

	assert.Equal(t, "No orphaned sessions\n", env.out.String())
}

func TestSessionsAdopt(t *testing.T) {
	env := newTestEnv(t)
	env.server.AddSession("cc-orchestrator-stray", t.TempDir(), 0)

	cmd := &SessionsAdoptCmd{Instance: "i9", Layout: "claude", Name: "stray"}
	require.NoError(t, cmd.Run(env.container))

	assert.Contains(t, env.out.String(), "Session 'cc-orchestrator-stray' is now tracked (1 window(s))")
	info := env.container.SessionService.GetSessionInfo("stray")
	require.NotNil(t, info)
	assert.Equal(t, "i9", info.InstanceID)
	assert.Equal(t, "claude", info.LayoutTemplate)
}

func TestSessionsAdopt_AlreadyTracked(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "demo", "")

	err := (&SessionsAdoptCmd{Name: "demo"}).Run(env.container)

	assert.ErrorIs(t, err, domain.ErrSessionExists)
}

func TestSessionsDestroy(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "demo", "")

	require.NoError(t, (&SessionsDestroyCmd{Name: "demo"}).Run(env.container))

	assert.Contains(t, env.out.String(), "Session 'cc-orchestrator-demo' destroyed")
	assert.False(t, env.server.Exists("cc-orchestrator-demo"))
	assert.Nil(t, env.container.SessionService.GetSessionInfo("demo"))
}

func TestSessionsDestroy_Missing(t *testing.T) {
	env := newTestEnv(t)

	err := (&SessionsDestroyCmd{Name: "ghost"}).Run(env.container)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "was not destroyed")
}

func TestSessionsDestroy_BusyNonInteractive(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "demo", "")
	env.server.SetAttached("cc-orchestrator-demo", 1)

	err := (&SessionsDestroyCmd{Name: "demo"}).Run(env.container)

	assert.ErrorIs(t, err, domain.ErrSessionBusy)
	assert.Empty(t, env.confirms)
	assert.True(t, env.server.Exists("cc-orchestrator-demo"))
}

func TestSessionsDestroy_BusyConfirmed(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "demo", "")
	env.server.SetAttached("cc-orchestrator-demo", 1)
	env.container.Interactive = func() bool { return true }
	env.container.Confirm = func(title, _ string) (bool, error) {
		env.confirms = append(env.confirms, title)
		return true, nil
	}

	require.NoError(t, (&SessionsDestroyCmd{Name: "demo"}).Run(env.container))

	assert.Equal(t, []string{"Session cc-orchestrator-demo has attached clients"}, env.confirms)
	assert.False(t, env.server.Exists("cc-orchestrator-demo"))
}

func TestSessionsDestroy_BusyDeclined(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "demo", "")
	env.server.SetAttached("cc-orchestrator-demo", 1)
	env.container.Interactive = func() bool { return true }

	require.NoError(t, (&SessionsDestroyCmd{Name: "demo"}).Run(env.container))

	assert.Len(t, env.confirms, 1)
	assert.Contains(t, env.out.String(), "Cancelled")
	assert.True(t, env.server.Exists("cc-orchestrator-demo"))
}

func TestSessionsDestroy_Force(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "demo", "")
	env.server.SetAttached("cc-orchestrator-demo", 3)

	require.NoError(t, (&SessionsDestroyCmd{Force: true, Name: "demo"}).Run(env.container))

	assert.Empty(t, env.confirms)
	assert.False(t, env.server.Exists("cc-orchestrator-demo"))
}

func TestSessionsCleanup_RequiresYesWhenNonInteractive(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "a", "")

	err := (&SessionsCleanupCmd{}).Run(env.container)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.True(t, env.server.Exists("cc-orchestrator-a"))
}

func TestSessionsCleanup_Yes(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "a", "i1")
	env.create(t, "b", "i2")
	env.server.AddSession("cc-orchestrator-stray", "/tmp", 0)

	require.NoError(t, (&SessionsCleanupCmd{Yes: true}).Run(env.container))

	assert.Contains(t, env.out.String(), "Destroyed 2 of 2 session(s)")
	assert.False(t, env.server.Exists("cc-orchestrator-a"))
	assert.False(t, env.server.Exists("cc-orchestrator-b"))
	assert.True(t, env.server.Exists("cc-orchestrator-stray"), "untracked sessions are left alone")
}

func TestSessionsCleanup_ByInstance(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "a", "i1")
	env.create(t, "b", "i2")

	require.NoError(t, (&SessionsCleanupCmd{Instance: "i1", Yes: true}).Run(env.container))

	assert.Contains(t, env.out.String(), "Destroyed 1 of 1 session(s)")
	assert.False(t, env.server.Exists("cc-orchestrator-a"))
	assert.True(t, env.server.Exists("cc-orchestrator-b"))
}

func TestSessionsCleanup_Confirmed(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "a", "")
	env.container.Interactive = func() bool { return true }
	env.container.Confirm = func(title, _ string) (bool, error) {
		env.confirms = append(env.confirms, title)
		return true, nil
	}

	require.NoError(t, (&SessionsCleanupCmd{}).Run(env.container))

	assert.Equal(t, []string{"Destroy 1 session(s)?"}, env.confirms)
	assert.False(t, env.server.Exists("cc-orchestrator-a"))
}

func TestSessionsCleanup_Declined(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "a", "")
	env.container.Interactive = func() bool { return true }

	require.NoError(t, (&SessionsCleanupCmd{}).Run(env.container))

	assert.Contains(t, env.out.String(), "Cancelled")
	assert.True(t, env.server.Exists("cc-orchestrator-a"))
}

func TestSessionsCleanup_NothingToDo(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, (&SessionsCleanupCmd{}).Run(env.container))

	assert.Equal(t, "Nothing to clean up\n", env.out.String())
}

func TestNewContainer_RestoresJournaledSessions(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, "demo", "i1")
	env.create(t, "gone", "i1")
	require.NoError(t, env.server.KillSession(context.Background(), "cc-orchestrator-gone"))
	require.NoError(t, env.container.Close())

	next := newTestEnvOn(t, env.home, env.server)

	info := next.container.SessionService.GetSessionInfo("demo")
	require.NotNil(t, info)
	assert.Equal(t, "i1", info.InstanceID)
	assert.Nil(t, next.container.SessionService.GetSessionInfo("gone"))
}
