package pkgmgr

import (
	"context"

	"github.com/wizzomafizzo/archpatch/internal/logging"
)

// Partition queries every package once, in order, and splits them into
// installed and missing. A query error counts as missing.
func Partition(ctx context.Context, manager Manager, names []string) (installed, missing []string) {
	logger := logging.Get(ctx)

	for _, name := range names {
		ok, err := manager.IsInstalled(ctx, name)
		if err != nil {
			logger.Warn().Err(err).Str("package", name).Msg("Package query failed, treating as missing")
		}
		if ok {
			installed = append(installed, name)
		} else {
			missing = append(missing, name)
		}
	}

	logger.Debug().
		Strs("installed", installed).
		Strs("missing", missing).
		Msg("Partitioned packages")

	return installed, missing
}
