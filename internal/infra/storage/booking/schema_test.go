package booking

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Каждая колонка, которую читает репозиторий, должна существовать в
// схеме миграции, иначе запросы падают только на живой базе.
func TestBookingColumnsMatchMigration(t *testing.T) {
	path := filepath.Join("..", "..", "..", "..", "migrations", "001_init.sql")
	data, err := os.ReadFile(path)
	require.NoError(t, err, "migration file must be readable")

	re := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS bookings \((.*?)\n\);`)
	match := re.FindStringSubmatch(string(data))
	require.Len(t, match, 2, "migration must create table bookings")
	ddl := match[1]

	for _, column := range bookingColumns {
		colRe := regexp.MustCompile(fmt.Sprintf(`(?m)^\s+%s\s`, column))
		assert.True(t, colRe.MatchString(ddl),
			"bookings table is missing column %q selected by the repository", column)
	}
}
