// Package cachebuster attaches modification-time tokens to asset URLs and strips them again.
//
// Three strategies are supported:
//
//	soft:  images/logo.png?jcb=1234567890
//	hard:  images/logo-jcb1234567890.png
//	rails: images/logo.png?1234567890
//
// Every strategy cleans the input first, so busting a busted path replaces the
// token instead of stacking a second one.
package cachebuster

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/squeeze/internal/core/domain"
	"go.trai.ch/zerr"
)

var (
	dataURIPattern   = regexp.MustCompile(`data:.*;base64`)
	bareTokenPattern = regexp.MustCompile(`\?\d+$`)
	bareHardPattern  = regexp.MustCompile(`-\d+((?:\.\w+)?)($|\?)`)
)

// Path busts file with the given strategy and parameter name.
//
// The file may carry a query string; the part before the first '?' must exist on
// disk. Data URIs are returned untouched, as is everything for CacheBusterNone.
// Rails busters never write a parameter name.
func Path(file string, typ domain.CacheBusterType, parameter string) (string, error) {
	if dataURIPattern.MatchString(file) || typ == domain.CacheBusterNone {
		return file, nil
	}

	if typ == domain.CacheBusterRails {
		parameter = ""
	}

	file = Clean(file, parameter)
	filename, _, hasQuery := strings.Cut(file, "?")

	info, err := os.Stat(filename)
	if err != nil && typ == domain.CacheBusterHard && parameter == "" {
		// A bare hard token cannot be told apart from a name by the string alone.
		if bare := bareHardPattern.ReplaceAllString(file, "${1}${2}"); bare != file {
			bareName, _, _ := strings.Cut(bare, "?")
			if bareInfo, bareErr := os.Stat(bareName); bareErr == nil {
				file, filename, info, err = bare, bareName, bareInfo, nil
			}
		}
	}
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrAssetNotFound.Error()), "path", filename)
	}
	mtime := strconv.FormatInt(info.ModTime().Unix(), 10)

	switch typ {
	case domain.CacheBusterRails:
		if hasQuery {
			return file, nil
		}
		return file + "?" + mtime, nil
	case domain.CacheBusterHard:
		return spliceBeforeExtension(file, "-"+parameter+mtime), nil
	default:
		sep := "?"
		if hasQuery {
			sep = "&"
		}
		if parameter != "" {
			parameter += "="
		}
		return file + sep + parameter + mtime, nil
	}
}

// Soft busts file with a query parameter.
func Soft(file, parameter string) (string, error) {
	return Path(file, domain.CacheBusterSoft, parameter)
}

// Hard busts file by embedding the token in the file name.
func Hard(file, parameter string) (string, error) {
	return Path(file, domain.CacheBusterHard, parameter)
}

// Rails busts file the way the Rails asset helpers do.
func Rails(file string) (string, error) {
	return Path(file, domain.CacheBusterRails, "")
}

// Clean removes a token previously added for parameter. Other query parameters are kept.
//
// With an empty parameter only a bare "?<timestamp>" query is removed; a bare hard
// token is left alone since only Path can check the file it names. Otherwise the
// soft form is removed first, and the hard form only when no soft token was found.
func Clean(file, parameter string) string {
	if parameter == "" {
		return bareTokenPattern.ReplaceAllString(file, "")
	}

	name := regexp.QuoteMeta(parameter)
	soft := regexp.MustCompile(`([?&])` + name + `=\d+&?`)
	if cleaned := soft.ReplaceAllString(file, "${1}"); cleaned != file {
		return strings.TrimRight(cleaned, "?&")
	}

	hard := regexp.MustCompile(`-` + name + `\d+((?:\.\w+)?)($|\?)`)
	return hard.ReplaceAllString(file, "${1}${2}")
}

// spliceBeforeExtension inserts token before the extension of the final path segment.
// The query string, if any, is left in place.
func spliceBeforeExtension(file, token string) string {
	name, query, hasQuery := strings.Cut(file, "?")
	ext := filepath.Ext(name)
	name = strings.TrimSuffix(name, ext) + token + ext
	if hasQuery {
		return name + "?" + query
	}
	return name
}
