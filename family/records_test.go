package family

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateString(t *testing.T) {
	assert.Equal(t, "unknown", Date{}.String())
	assert.Equal(t, "1952", Date{Year: 1952}.String())
	assert.Equal(t, "1952-08", Date{Year: 1952, Month: 8}.String())
	assert.Equal(t, "1952-08-15", Date{Year: 1952, Month: 8, Day: 15}.String())
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Kevin Husky", (&Person{GivenName: "Kevin", Surname: "Husky"}).FullName())
	assert.Equal(t, "Kevin", (&Person{GivenName: "Kevin"}).FullName())
	assert.Equal(t, "Husky", (&Person{Surname: "Husky"}).FullName())
	assert.Equal(t, "", (&Person{}).FullName())
}
