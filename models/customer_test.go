package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// Phones are unique per salon, not globally: two salons may share a
// customer phone number, so the unique index must lead with salon_id.
func TestCustomerPhoneUniqueIndexIsSalonScoped(t *testing.T) {
	s, err := schema.Parse(&Customer{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	var phoneIdx *schema.Index
	for _, idx := range s.ParseIndexes() {
		if idx.Name == "idx_salon_phone" {
			phoneIdx = idx
		}
	}
	require.NotNil(t, phoneIdx, "idx_salon_phone index missing")
	assert.Equal(t, "UNIQUE", phoneIdx.Class)

	var columns []string
	for _, f := range phoneIdx.Fields {
		columns = append(columns, f.DBName)
	}
	assert.Equal(t, []string{"salon_id", "phone"}, columns)
}

func TestReviewReservationIndexIsUnique(t *testing.T) {
	s, err := schema.Parse(&Review{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	var found bool
	for _, idx := range s.ParseIndexes() {
		if len(idx.Fields) == 1 && idx.Fields[0].DBName == "reservation_id" {
			found = true
			assert.Equal(t, "UNIQUE", idx.Class)
		}
	}
	assert.True(t, found, "unique index on reservation_id missing")
}
