package report

import (
	"bytes"
	"sort"

	"github.com/magiconair/properties"
)

// File names of the results directory layout.
const (
	EnvironmentFileName = "environment.properties"
	CategoriesFileName  = "categories.json"

	resultSuffix    = "-result.json"
	containerSuffix = "-container.json"
)

func ResultFileName(uuid string) string {
	return uuid + resultSuffix
}

func ContainerFileName(uuid string) string {
	return uuid + containerSuffix
}

// FormatEnvironmentProperties renders info as a Java properties document
// with keys in sorted order. Values are written verbatim, so "${...}"
// sequences are not expanded.
func FormatEnvironmentProperties(info map[string]string) []byte {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	props := properties.NewProperties()
	props.DisableExpansion = true
	for _, k := range keys {
		_, _, _ = props.Set(k, info[k])
	}

	var buf bytes.Buffer
	_, _ = props.Write(&buf, properties.UTF8)
	return buf.Bytes()
}
