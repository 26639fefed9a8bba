package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/cc-orchestrator/internal/domain"
)

const sampleLayouts = `templates:
  - name: review
    description: Code review
    default_pane_command: zsh
    windows:
      - name: diff
        command: git diff
      - name: split
        panes:
          - command: htop
          - split: horizontal
`

func TestParse(t *testing.T) {
	templates, err := Parse([]byte(sampleLayouts))

	require.NoError(t, err)
	require.Len(t, templates, 1)

	review := templates[0]
	assert.Equal(t, "review", review.Name)
	assert.Equal(t, "zsh", review.DefaultPaneCommand)
	require.Len(t, review.Windows, 2)
	assert.Equal(t, "git diff", review.Windows[0].Command)
	assert.Empty(t, review.Windows[0].Panes)
	assert.Equal(t, []domain.PaneSpec{{Command: "htop"}, {Split: "horizontal"}}, review.Windows[1].Panes)
}

func TestParse_RejectsNamelessTemplate(t *testing.T) {
	_, err := Parse([]byte("templates:\n  - description: nope\n"))
	assert.Error(t, err)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("templates: ["))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleLayouts), 0o644))

	r := NewRegistry()
	n, err := r.LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, ok := r.Get("review")
	assert.True(t, ok)
	assert.Len(t, r.All(), 4)
}

func TestLoadFile_MissingIsNotAnError(t *testing.T) {
	n, err := NewRegistry().LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMergeFile_ReplacesByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleLayouts), 0o644))

	err := MergeFile(path, []domain.LayoutTemplate{
		{Name: "review", Description: "replaced", Windows: []domain.WindowSpec{{Name: "only"}}},
		{Name: "extra", Windows: []domain.WindowSpec{{Name: "w", Command: "top"}}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	templates, err := Parse(data)
	require.NoError(t, err)

	require.Len(t, templates, 2)
	assert.Equal(t, "review", templates[0].Name)
	assert.Equal(t, "replaced", templates[0].Description)
	assert.Len(t, templates[0].Windows, 1)
	assert.Equal(t, "extra", templates[1].Name)
	assert.Equal(t, "top", templates[1].Windows[0].Command)
}

func TestMergeFile_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.yaml")

	require.NoError(t, MergeFile(path, BuiltinTemplates()[:1]))

	r := NewRegistry()
	n, err := r.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
