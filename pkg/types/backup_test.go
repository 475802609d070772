package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackupValidate(t *testing.T) {
	var nilBackup *Backup
	assert.ErrorIs(t, nilBackup.Validate(), ErrBackupNil)
	assert.ErrorIs(t, (&Backup{Version: 0}).Validate(), ErrBackupVersion)
	assert.NoError(t, (&Backup{Version: BackupVersion}).Validate())
}
