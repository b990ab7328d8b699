package steamcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_appUpdateArgs(t *testing.T) {
	args := appUpdateArgs("C:\\terraria\\server", "105600")

	assert.Equal(t, []string{
		"+force_install_dir", "C:\\terraria\\server",
		"+login", "anonymous",
		"+app_update", "105600", "validate",
		"+quit",
	}, args)
}
