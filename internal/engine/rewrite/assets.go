package rewrite

import (
	"os"
	"path/filepath"

	"go.trai.ch/squeeze/internal/engine/asset"
	"go.trai.ch/zerr"
)

// Assets returns the files on disk the url() references of files point at, in
// first-seen order. References are resolved from the directory of the file
// declaring them, against documentRoot and the hosts it serves. References that
// do not resolve to an existing file are left out.
func Assets(files []string, documentRoot string, hosts ...string) ([]string, error) {
	var assets []string
	seen := make(map[string]struct{})

	for _, file := range files {
		content, err := os.ReadFile(file) //nolint:gosec // closure files are chosen by the user
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read stylesheet"), "path", file)
		}

		resolver := asset.NewResolver(
			asset.WithBase(filepath.Dir(file)),
			asset.WithDocumentRoot(documentRoot),
			asset.WithHosts(hosts...),
		)
		for _, m := range urlPattern.FindAllStringSubmatch(string(content), -1) {
			if skip(m[1]) {
				continue
			}
			disk, err := resolver.Resolve(m[1]).DiskPath()
			if err != nil {
				continue
			}
			if _, ok := seen[disk]; ok {
				continue
			}
			if info, err := os.Stat(disk); err != nil || info.IsDir() {
				continue
			}
			seen[disk] = struct{}{}
			assets = append(assets, disk)
		}
	}
	return assets, nil
}
