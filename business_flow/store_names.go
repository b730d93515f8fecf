package businessflow

import (
	"math/rand"
	"strings"
)

// Word lists for generated placeholder store names. Collisions are
// acceptable; the name is display-only and not required to be unique.
var (
	storeNameFirstWords  = []string{"ACME", "Apu's", "Corner", "Dollar", "Harlem", "Moe's"}
	storeNameSecondWords = []string{"Markt", "Store", "Stuff", "Warehouse"}
)

// RandomStoreName returns a placeholder name for a store created lazily
// during warranty issuance, two random words joined by a space.
func RandomStoreName() string {
	return strings.Join([]string{
		storeNameFirstWords[rand.Intn(len(storeNameFirstWords))],
		storeNameSecondWords[rand.Intn(len(storeNameSecondWords))],
	}, " ")
}
