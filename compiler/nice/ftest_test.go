package nice_test

import (
	"testing"

	"github.com/fernlang/fern/ftest"
)

func TestFTest(t *testing.T) { ftest.Run(t, "testdata/ftest") }
