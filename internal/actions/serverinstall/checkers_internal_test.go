package serverinstall

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_isValidWorldName(t *testing.T) {
	tests := []struct {
		name  string
		world string
		want  bool
	}{
		{
			name:  "simple",
			world: "MyWorld",
			want:  true,
		},
		{
			name:  "with_spaces",
			world: "My World",
			want:  true,
		},
		{
			name:  "empty",
			world: "",
			want:  false,
		},
		{
			name:  "path_separator",
			world: "..\\..\\world",
			want:  false,
		},
		{
			name:  "equals_sign",
			world: "world=1",
			want:  false,
		},
		{
			name:  "quote",
			world: `wor"ld`,
			want:  false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, isValidWorldName(test.world))
		})
	}
}

func Test_applyDefaults(t *testing.T) {
	state, err := applyDefaults(serverInstallState{NonInteractive: true})

	assert.NoError(t, err)
	assert.Equal(t, "World", state.WorldName)
	assert.Equal(t, 7777, state.Port)
	assert.Equal(t, 8, state.MaxPlayers)
	assert.True(t, state.Autostart)
	assert.True(t, state.BackupTask)
	assert.Len(t, state.Password, 16)
}

func Test_applyDefaults_keepsExplicitValues(t *testing.T) {
	state, err := applyDefaults(serverInstallState{
		WorldName:  "Caverns",
		Port:       7878,
		MaxPlayers: 16,
		Password:   "secret",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Caverns", state.WorldName)
	assert.Equal(t, 7878, state.Port)
	assert.Equal(t, 16, state.MaxPlayers)
	assert.Equal(t, "secret", state.Password)
}
