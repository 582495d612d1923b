package letterboxd

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listPage(films []string, hasNext bool) string {
	page := "<html><body><ul>"
	for _, slug := range films {
		page += fmt.Sprintf(`<li class="posteritem"><div class="react-component" data-item-slug=%q data-item-name=%q></div></li>`, slug, slug)
	}
	page += "</ul>"
	if hasNext {
		page += `<div class="pagination"><a class="next" href="#">Next</a></div>`
	}
	return page + "</body></html>"
}

func TestListFilmsPagination(t *testing.T) {
	var requestedPaths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPaths = append(requestedPaths, r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		switch r.URL.Path {
		case "/user/list/films":
			fmt.Fprint(w, listPage([]string{"heat-1995", "collateral-2004"}, true))
		case "/user/list/films/page/2/":
			fmt.Fprint(w, listPage([]string{"thief-1981"}, false))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(zerolog.Nop(), WithPageDelay(0))

	films, err := client.ListFilms(context.Background(), server.URL+"/user/list/films/")
	require.NoError(t, err)

	require.Len(t, films, 3)
	assert.Equal(t, "heat-1995", films[0].Slug)
	assert.Equal(t, "thief-1981", films[2].Slug)
	assert.Equal(t, []string{"/user/list/films", "/user/list/films/page/2/"}, requestedPaths)
}

func TestListFilmsFirstPageError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(zerolog.Nop(), WithPageDelay(0))

	_, err := client.ListFilms(context.Background(), server.URL+"/user/list/films/")
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
}

func TestListFilmsLaterPageErrorKeepsCollected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/list" {
			fmt.Fprint(w, listPage([]string{"heat-1995"}, true))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(zerolog.Nop(), WithPageDelay(0))

	films, err := client.ListFilms(context.Background(), server.URL+"/list")
	require.NoError(t, err)
	require.Len(t, films, 1)
}

func TestListFilmsEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listPage(nil, false))
	}))
	defer server.Close()

	client := NewClient(zerolog.Nop(), WithPageDelay(0))

	films, err := client.ListFilms(context.Background(), server.URL+"/list")
	require.NoError(t, err)
	assert.Empty(t, films)
}

func TestListFilmsInvalidURL(t *testing.T) {
	client := NewClient(zerolog.Nop())

	_, err := client.ListFilms(context.Background(), "not-a-url")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = client.ListFilms(context.Background(), "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestMaxPagesCap(t *testing.T) {
	var pages int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		// Every page claims to have a next one
		fmt.Fprint(w, listPage([]string{fmt.Sprintf("film-%d", pages)}, true))
	}))
	defer server.Close()

	client := NewClient(zerolog.Nop(), WithPageDelay(0), WithMaxPages(3))

	films, err := client.ListFilms(context.Background(), server.URL+"/list")
	require.NoError(t, err)
	assert.Len(t, films, 3)
	assert.Equal(t, 3, pages)
}
