// Package snapshot compares JSON encoded values against files in testdata/
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var (
	funcCount   = make(map[string]int)
	funcCountMu sync.Mutex
)

// ValidateSnapshot performs snapshot testing
// The snapshot is written if it does not exist yet, or if UPDATE_SNAPSHOTS is set
func ValidateSnapshot(t *testing.T, obj interface{}, depth int, msgAndArgs ...interface{}) bool {
	t.Helper()
	skip := 1 + depth

	pc, _, _, _ := runtime.Caller(skip)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	funcCountMu.Lock()
	call := funcCount[funcName]
	funcCount[funcName] = call + 1
	funcCountMu.Unlock()

	filename := filepath.Join("testdata", fmt.Sprintf("%s-%d.json", funcName, call))

	expects, err := os.ReadFile(filename)
	if err != nil || os.Getenv("UPDATE_SNAPSHOTS") != "" {
		if err != nil && !os.IsNotExist(err) {
			t.Fatalf("could not read snapshot %s: %v", filename, err)
		}

		create(t, filename, obj)
		return true
	}

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not encode snapshot: %v", err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
		return false
	}

	return true
}

func create(t *testing.T, filename string, obj interface{}) {
	t.Helper()
	logrus.WithField("filename", filename).Info("writing snapshot file")

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatalf("could not create snapshot directory: %v", err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		t.Fatalf("could not create snapshot: %v", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(obj); err != nil {
		t.Fatalf("could not write snapshot: %v", err)
	}
}
