package specification

import (
	"context"
	"testing"
	"time"

	"erp/domain/query"
	"erp/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type item struct {
	Code    string
	Name    string
	Created *time.Time
}

type itemRow struct {
	Code string `gorm:"column:code;primaryKey"`
}

func (itemRow) TableName() string { return "items" }

var (
	codeField    = query.TextField("code", "code", func(i item) string { return i.Code })
	nameField    = query.TextField("name", "name", func(i item) string { return i.Name })
	createdField = query.TimeField("created", "created", func(i item) *time.Time { return i.Created })
)

type unknownSpec struct{}

func (unknownSpec) IsSatisfiedBy(context.Context, item) bool { return true }

func dryRun(t *testing.T, expr clause.Expression) (string, []any) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DryRun: true, Logger: gormlogger.Discard})
	require.NoError(t, err)

	tx := db.Model(&itemRow{})
	if expr != nil {
		tx = tx.Where(expr)
	}
	var rows []itemRow
	stmt := tx.Find(&rows).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestTranslateNilIsNoConstraint(t *testing.T) {
	expr, err := Translate[item](nil)
	require.NoError(t, err)
	assert.Nil(t, expr)
}

func TestTranslateContainsUpperCasesAndEscapes(t *testing.T) {
	expr, err := Translate(query.Contains(nameField, "50%_off"))
	require.NoError(t, err)

	sql, vars := dryRun(t, expr)

	assert.Contains(t, sql, "UPPER(`name`) LIKE ? ESCAPE '!'")
	assert.Equal(t, []any{"%50!%!_OFF%"}, vars)
}

func TestTranslateSearchOrWithFilterAnd(t *testing.T) {
	spec := shared.And(
		shared.Or(query.Contains(codeField, "ac"), query.Contains(nameField, "ac")),
		query.Equals(codeField, "ACME"),
	)
	expr, err := Translate(spec)
	require.NoError(t, err)

	sql, vars := dryRun(t, expr)

	assert.Contains(t, sql, " OR ")
	assert.Contains(t, sql, "AND UPPER(`code`) = ?")
	assert.Equal(t, []any{"%AC%", "%AC%", "ACME"}, vars)
}

func TestTranslateBetween(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	expr, err := Translate(query.Between(createdField, &from, &to))
	require.NoError(t, err)
	sql, vars := dryRun(t, expr)
	assert.Contains(t, sql, "`created` >= ?")
	assert.Contains(t, sql, "`created` <= ?")
	assert.Equal(t, []any{from, to}, vars)

	expr, err = Translate(query.Between(createdField, nil, nil))
	require.NoError(t, err)
	sql, _ = dryRun(t, expr)
	assert.Contains(t, sql, "`created` IS NOT NULL")
}

func TestTranslateNotAndEmptyIn(t *testing.T) {
	expr, err := Translate(shared.Not(query.Equals(codeField, "X")))
	require.NoError(t, err)
	sql, _ := dryRun(t, expr)
	assert.Contains(t, sql, "NOT")
	assert.Contains(t, sql, "UPPER(`code`) = ?")

	expr, err = Translate(query.In[item](codeField))
	require.NoError(t, err)
	sql, _ = dryRun(t, expr)
	assert.Contains(t, sql, "1 = 0")
}

func TestTranslateTextEqualityIgnoresCase(t *testing.T) {
	expr, err := Translate(query.Equals(codeField, "acme"))
	require.NoError(t, err)
	sql, vars := dryRun(t, expr)
	assert.Contains(t, sql, "UPPER(`code`) = ?")
	assert.Equal(t, []any{"ACME"}, vars)

	expr, err = Translate(query.In[item](codeField, "a", "b"))
	require.NoError(t, err)
	sql, vars = dryRun(t, expr)
	assert.Contains(t, sql, "UPPER(`code`) IN (?,?)")
	assert.Equal(t, []any{"A", "B"}, vars)
}

func TestTranslateRejectsUnknownSpecification(t *testing.T) {
	_, err := Translate[item](shared.And[item](unknownSpec{}, query.Equals(codeField, "A")))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "a!%b!_c!!", EscapeLike("a%b_c!"))
	assert.Equal(t, "plain", EscapeLike("plain"))
}

func TestOrderBy(t *testing.T) {
	orders := []query.Order[item]{{Field: nameField, Desc: true}, {Field: codeField}}

	ob := OrderBy(orders)

	require.Len(t, ob.Columns, 2)
	assert.Equal(t, "name", ob.Columns[0].Column.Name)
	assert.True(t, ob.Columns[0].Desc)
	assert.False(t, ob.Columns[1].Desc)
}
