package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot(t *testing.T) {
	// base/
	//   notes/ (.stoat)
	//     journal/
	//       2024/
	//   config/ (stoat.yaml)
	//   empty/
	baseDir := t.TempDir()
	notesDir := filepath.Join(baseDir, "notes")
	journalDir := filepath.Join(notesDir, "journal")
	yearDir := filepath.Join(journalDir, "2024")
	configDir := filepath.Join(baseDir, "config")
	emptyDir := filepath.Join(baseDir, "empty")

	require.NoError(t, os.MkdirAll(yearDir, 0755))
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.MkdirAll(emptyDir, 0755))
	require.NoError(t, os.Mkdir(filepath.Join(notesDir, ".stoat"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "stoat.yaml"), nil, 0644))

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{"Start At Root", notesDir, notesDir, false},
		{"Start In Subdir", journalDir, notesDir, false},
		{"Start Nested Deeply", yearDir, notesDir, false},
		{"Config File Marker", configDir, configDir, false},
		{"No Root Found", emptyDir, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrRootNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(tt.wantRoot), filepath.Clean(got))
		})
	}
}
