package binder

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	Query string `json:"query" query:"query" mod:"trim" validate:"max=9"`
	Date  string `json:"date" query:"date" validate:"omitempty,date"`
	Omit  string `json:"-"`
}

var (
	goodJSON             = `{"query":" dune "}`
	unknownFieldsErrJSON = `{"query":"dune","foo":"bar"}`
	typeErrJSON          = `{"query":123}`
	validationErrJSON    = `{"query":"0123456789"}`
	badDateJSON          = `{"query":"dune","date":"03/15/2024"}`
	goodDateJSON         = `{"query":"dune","date":"2024-03-15"}`
)

func TestNew(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)
	assert.NotNil(t, b)

	t.Run("only allows application/json and application/x-www-form-urlencoded", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationXML)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "Unsupported Media Type")
	})

	t.Run("disallows unknown fields", func(tt *testing.T) {
		c := newContext(unknownFieldsErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `Unknown Parameter "foo"`)
	})

	t.Run("returns a good message for type errors", func(tt *testing.T) {
		c := newContext(typeErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"query" should be of type string`)
	})

	t.Run("use mod tag to modify params", func(tt *testing.T) {
		c := newContext(goodJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "dune", p.Query)
	})

	t.Run("use validate tag to validate params", func(tt *testing.T) {
		c := newContext(validationErrJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "length must be less than or equal to 9 characters")
	})

	t.Run("rejects dates that aren't YYYY-MM-DD", func(tt *testing.T) {
		c := newContext(badDateJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "YYYY-MM-DD")
	})

	t.Run("accepts well-formed dates", func(tt *testing.T) {
		c := newContext(goodDateJSON, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "2024-03-15", p.Date)
	})

	t.Run("decodes query params on GET requests", func(tt *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(echo.GET, "/?query=dune&date=2024-03-15", nil)
		rr := httptest.NewRecorder()
		c := e.NewContext(req, rr)

		p := params{}
		err = b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "dune", p.Query)
		assert.Equal(tt, "2024-03-15", p.Date)
	})
}

func newContext(payload, mime string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(echo.POST, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, mime)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr)
}
