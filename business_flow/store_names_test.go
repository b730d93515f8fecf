package businessflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomStoreName(t *testing.T) {
	for i := 0; i < 50; i++ {
		name := RandomStoreName()
		parts := strings.SplitN(name, " ", 2)
		assert.Len(t, parts, 2)
		assert.Contains(t, storeNameFirstWords, parts[0])
		assert.Contains(t, storeNameSecondWords, parts[1])

		// Longest combination must still fit the 32 char column
		assert.LessOrEqual(t, len(name), 32)
	}
}
