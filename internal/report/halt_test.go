package report

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"niptreport/internal/importer"
	"niptreport/internal/model"
)

func TestCheckTable(t *testing.T) {
	t.Parallel()

	source := "/srv/nipt/cases.xlsx"

	notFound := CheckTable(nil, fmt.Errorf("%w: %s", importer.ErrSourceNotFound, source), source)
	require.NotNil(t, notFound)
	assert.Equal(t, "Source file not found", notFound.Title)
	assert.Equal(t, http.StatusServiceUnavailable, notFound.Status)
	assert.Contains(t, notFound.Message, "cases.xlsx")
	assert.Contains(t, notFound.Hint, "/srv/nipt")

	unreadable := CheckTable(nil, fmt.Errorf("%w: zip", importer.ErrSourceUnreadable), source)
	require.NotNil(t, unreadable)
	assert.Equal(t, "Source file unreadable", unreadable.Title)

	empty := CheckTable(&model.Table{}, nil, source)
	require.NotNil(t, empty)
	assert.Equal(t, "No usable data", empty.Title)
	assert.Contains(t, empty.Error(), "no usable data")

	other := CheckTable(nil, errors.New("boom"), source)
	require.NotNil(t, other)
	assert.Equal(t, http.StatusInternalServerError, other.Status)

	ok := CheckTable(&model.Table{Records: []model.Record{{NIPTPackage: "P", Sales: "A"}}}, nil, source)
	assert.Nil(t, ok)
}
