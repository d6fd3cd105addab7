package pgrepo

import (
	"testing"

	"github.com/fsdevblog/adashi/internal/repository/repoargs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "rent", want: "rent"},
		{in: "100%", want: `100\%`},
		{in: "first_deposit", want: `first\_deposit`},
		{in: `C:\notes`, want: `C:\\notes`},
		{in: `%_\`, want: `\%\_\\`},
		{in: "", want: ""},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, escapeLike(c.in))
		})
	}
}

func TestTransactionWhere(t *testing.T) {
	t.Run("empty filter", func(t *testing.T) {
		where, args := transactionWhere(repoargs.TransactionFilter{})
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("search is escaped", func(t *testing.T) {
		userID := uuid.New()
		where, args := transactionWhere(repoargs.TransactionFilter{
			UserID: userID,
			Search: "  50%_off ",
		})

		assert.Equal(t,
			`WHERE t.user_id = $1 AND t.notes ILIKE '%' || $2 || '%' ESCAPE '\'`, where)
		require.Len(t, args, 2)
		assert.Equal(t, userID, args[0])
		assert.Equal(t, `50\%\_off`, args[1])
	})
}
