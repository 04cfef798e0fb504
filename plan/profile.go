package plan

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/signadot/splice/debug"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
)

var profileExts = []string{".json", ".yaml", ".yml"}

// Profiles lists the profiles found in root/profiles.
func Profiles(root string) ([]string, error) {
	dirEnts, err := os.ReadDir(filepath.Join(root, "profiles"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	res := []string{}
	for _, dirEnt := range dirEnts {
		if dirEnt.IsDir() {
			continue
		}
		fName := dirEnt.Name()
		ext := filepath.Ext(fName)
		if !isProfileExt(ext) {
			continue
		}
		res = append(res, strings.TrimSuffix(fName, ext))
	}
	sort.Strings(res)
	return res, nil
}

func isProfileExt(ext string) bool {
	for _, e := range profileExts {
		if e == ext {
			return true
		}
	}
	return false
}

func profilePath(root, profile string) (string, error) {
	// try just the file
	st, err := os.Stat(profile)
	if err == nil && !st.IsDir() {
		return profile, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	for _, ext := range profileExts {
		path := filepath.Join(root, "profiles", profile+ext)
		st, err := os.Stat(path)
		if err == nil && !st.IsDir() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("profile %q not found in %s", profile, filepath.Join(root, "profiles"))
}

// applyProfile patches the plan document d with a profile. A profile
// holding a list is an RFC 6902 JSON patch; an object is a merge patch.
// The result is JSON.
func applyProfile(d []byte, root, profile string) ([]byte, error) {
	path, err := profilePath(root, profile)
	if err != nil {
		return nil, err
	}
	pd, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) != ".json" {
		pd, err = yaml.YAMLToJSON(pd)
		if err != nil {
			return nil, fmt.Errorf("could not decode %s: %w", path, err)
		}
	}
	jd, err := yaml.YAMLToJSON(d)
	if err != nil {
		return nil, err
	}
	if debug.Plan() {
		debug.Logf("applying profile %s\n", path)
	}
	pd = bytes.TrimSpace(pd)
	if len(pd) != 0 && pd[0] == '[' {
		ops, err := jsonpatch.DecodePatch(pd)
		if err != nil {
			return nil, fmt.Errorf("could not decode %s: %w", path, err)
		}
		return ops.Apply(jd)
	}
	return jsonpatch.MergePatch(jd, pd)
}
