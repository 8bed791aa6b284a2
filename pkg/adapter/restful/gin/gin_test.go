// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/lendweb/internal/test/sqlitedb"
	"github.com/momeni/lendweb/pkg/adapter/config"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin"
	"github.com/momeni/lendweb/pkg/adapter/restful/gin/routes"
	"github.com/momeni/lendweb/pkg/core/model"
	"github.com/stretchr/testify/suite"
)

const allowedOrigin = "http://localhost:5173"

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx context.Context
	Gin *gin.Engine
}

func TestIntegrationGinTestSuite(t *testing.T) {
	suite.Run(t, &IntegrationGinTestSuite{Ctx: context.Background()})
}

// SetupTest prepares a fresh engine over an in-memory database which
// contains the sample books, users, and loans.
func (igts *IntegrationGinTestSuite) SetupTest() {
	r := igts.Require()
	c, err := config.Parse([]byte(fmt.Sprintf(`
gin:
  logger: false
  cors:
    allowed-origins: [%q]
usecases:
  media:
    dir: %q
    max-file-size: 1024
`, allowedOrigin, igts.T().TempDir())))
	r.NoError(err, "failed to parse the config")

	p := sqlitedb.NewWithSamples(igts.T())
	igts.Gin = c.Gin.NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.NotNil(igts.Gin, "cannot instantiate Gin engine")
	r.NoError(routes.Register(igts.Gin, p, c), "failed to register routes")
}

func (igts *IntegrationGinTestSuite) serve(
	req *http.Request,
) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	return w
}

// call sends in (if not nil) as the JSON body of a method request to
// the path (relative to the routes.BasePath) and decodes the response
// body into out (if not nil). The response status code is returned.
func (igts *IntegrationGinTestSuite) call(
	method, path string, in, out any,
) int {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		igts.Require().NoError(err, "cannot marshal request body")
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(
		igts.Ctx, method, routes.BasePath+path, body,
	)
	igts.Require().NoError(err, "cannot create %s request", method)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := igts.serve(req)
	if out != nil && w.Body.Len() > 0 {
		err = json.Unmarshal(w.Body.Bytes(), out)
		igts.Require().NoError(err, "cannot unmarshal %q", w.Body.String())
	}
	return w.Code
}

// H is a JSON object.
type H = map[string]any

type detail struct {
	Detail string
}

func (igts *IntegrationGinTestSuite) findUser(email string) model.User {
	var res model.Paged[model.User]
	code := igts.call(http.MethodGet, "/users?search="+email, nil, &res)
	igts.Require().Equal(http.StatusOK, code)
	igts.Require().Len(res.Items, 1)
	return res.Items[0]
}

func (igts *IntegrationGinTestSuite) TestBooks() {
	var b model.Book
	code := igts.call(http.MethodPost, "/books", H{
		"title":          "  Capitães da Areia ",
		"isbn":           "0-306-40615-2",
		"pages":          280,
		"total_quantity": 2,
	}, &b)
	igts.Require().Equal(http.StatusCreated, code)
	igts.Equal("Capitães da Areia", b.Title)
	igts.Equal("0306406152", b.ISBN)
	igts.Equal(2, b.AvailableQuantity, "omitted availability is total")

	var d detail
	code = igts.call(http.MethodPost, "/books", H{
		"title": "capitães  da areia", "pages": 10,
	}, &d)
	igts.Equal(http.StatusConflict, code)
	igts.Contains(d.Detail, "already exists")

	var errs map[string][]string
	code = igts.call(http.MethodPost, "/books", H{"pages": 10}, &errs)
	igts.Equal(http.StatusBadRequest, code)
	igts.Contains(errs, "Title")

	code = igts.call(http.MethodPatch, "/books/"+b.ID.String()+"/isbn",
		H{"isbn": "9780451524935"}, &d)
	igts.Equal(http.StatusConflict, code, "1984 holds that ISBN")

	code = igts.call(http.MethodPost, "/books/"+b.ID.String()+"/stock",
		H{"quantity": 3}, &b)
	igts.Require().Equal(http.StatusOK, code)
	igts.Equal(5, b.TotalQuantity)
	igts.Equal(5, b.AvailableQuantity)

	errs = nil
	code = igts.call(http.MethodPost, "/books/"+b.ID.String()+"/stock",
		H{"quantity": 0}, &errs)
	igts.Equal(http.StatusBadRequest, code)
	igts.Contains(errs, "Quantity")

	code = igts.call(http.MethodDelete, "/books/"+b.ID.String(), nil, nil)
	igts.Equal(http.StatusNoContent, code)
	code = igts.call(http.MethodDelete, "/books/"+b.ID.String(), nil, &d)
	igts.Equal(http.StatusNotFound, code)

	var res model.Paged[model.Book]
	code = igts.call(http.MethodGet, "/books?size=2", nil, &res)
	igts.Require().Equal(http.StatusOK, code)
	igts.Equal(5, res.Total, "only the samples are active")
	igts.Len(res.Items, 2)
	code = igts.call(http.MethodGet, "/books?include_inactive=true", nil, &res)
	igts.Require().Equal(http.StatusOK, code)
	igts.Equal(6, res.Total)
}

func (igts *IntegrationGinTestSuite) TestPathIDs() {
	var errs map[string][]string
	code := igts.call(http.MethodGet, "/books/not-a-uuid", nil, &errs)
	igts.Equal(http.StatusBadRequest, code)
	igts.Equal([]string{"Path param id is not a UUID."}, errs["id"])

	for _, path := range []string{"/books/", "/users/", "/loans/", "/contents/"} {
		var d detail
		code = igts.call(http.MethodGet, path+uuid.NewString(), nil, &d)
		igts.Equal(http.StatusNotFound, code, path)
		igts.Contains(d.Detail, "not found with id", path)
	}
}

func (igts *IntegrationGinTestSuite) TestPaging() {
	for _, path := range []string{
		"/books?page=abc", "/users?size=x", "/loans?page=1.5",
		"/contents?page=abc",
	} {
		var d detail
		code := igts.call(http.MethodGet, path, nil, &d)
		igts.Equal(http.StatusBadRequest, code, path)
		igts.NotEmpty(d.Detail, path)
	}

	var res model.Paged[model.Book]
	code := igts.call(
		http.MethodGet, "/books?page=9223372036854775807&size=1000", nil, &res,
	)
	igts.Require().Equal(http.StatusOK, code)
	igts.Equal(model.MaxPageNumber, res.Page)
	igts.Equal(model.MaxPageSize, res.Size)
	igts.Equal(5, res.Total)
	igts.Empty(res.Items, "far pages are empty")
}

func (igts *IntegrationGinTestSuite) TestUsers() {
	var u model.User
	code := igts.call(http.MethodPost, "/users", H{
		"name": "Rachel", "email": "RACHEL@example.com",
	}, &u)
	igts.Require().Equal(http.StatusCreated, code)
	igts.Equal("rachel@example.com", u.Email)
	igts.True(u.Active)

	var d detail
	code = igts.call(http.MethodPost, "/users", H{
		"name": "Rachel Q.", "email": "rachel@example.com",
	}, &d)
	igts.Equal(http.StatusConflict, code)

	code = igts.call(http.MethodPost, "/users", H{
		"name": "X", "email": "not-an-email",
	}, &d)
	igts.Equal(http.StatusBadRequest, code)
	igts.Contains(d.Detail, "invalid email")

	joao := igts.findUser("joao@example.com")
	code = igts.call(http.MethodDelete, "/users/"+joao.ID.String(), nil, &d)
	igts.Equal(http.StatusUnprocessableEntity, code)
	igts.Equal("cannot delete user with active loans", d.Detail)

	var eligibility struct {
		Eligible bool
	}
	ana := igts.findUser("ana@example.com")
	code = igts.call(http.MethodGet,
		"/users/"+ana.ID.String()+"/eligibility", nil, &eligibility)
	igts.Require().Equal(http.StatusOK, code)
	igts.False(eligibility.Eligible)

	code = igts.call(http.MethodPatch,
		"/users/"+ana.ID.String()+"/active", nil, &u)
	igts.Require().Equal(http.StatusOK, code)
	igts.True(u.Active)
}

func (igts *IntegrationGinTestSuite) TestLoans() {
	var res model.Paged[model.Loan]
	code := igts.call(http.MethodGet, "/loans?status=ATRASADO", nil, &res)
	igts.Require().Equal(http.StatusOK, code)
	igts.Require().Equal(1, res.Total)
	igts.Equal(model.LoanStatusOverdue, res.Items[0].Status)

	var d detail
	code = igts.call(http.MethodGet, "/loans?status=LATE", nil, &d)
	igts.Equal(http.StatusBadRequest, code)
	igts.Contains(d.Detail, "ATIVO, DEVOLVIDO, ATRASADO")

	var errs map[string][]string
	code = igts.call(http.MethodGet, "/loans?user_id=nope", nil, &errs)
	igts.Equal(http.StatusBadRequest, code)
	igts.Contains(errs, "UserID")

	errs = nil
	code = igts.call(http.MethodGet, "/loans/overdue?as_of=13/05/2024", nil, &errs)
	igts.Equal(http.StatusBadRequest, code)
	igts.Equal([]string{"Expected a YYYY-MM-DD date."}, errs["as_of"])

	var overdue []model.Loan
	code = igts.call(http.MethodGet, "/loans/overdue", nil, &overdue)
	igts.Require().Equal(http.StatusOK, code)
	igts.Len(overdue, 1)

	ana := igts.findUser("ana@example.com")
	var books model.Paged[model.Book]
	code = igts.call(http.MethodGet, "/books", nil, &books)
	igts.Require().Equal(http.StatusOK, code)
	bid := books.Items[0].ID

	code = igts.call(http.MethodPost, "/loans", H{
		"user_id": ana.ID, "book_id": bid, "due_date": "2000-01-01",
	}, &d)
	igts.Equal(http.StatusBadRequest, code)
	igts.Contains(d.Detail, "before the loan date")

	var l model.Loan
	code = igts.call(http.MethodPost, "/loans", H{
		"user_id": ana.ID, "book_id": bid,
	}, &l)
	igts.Require().Equal(http.StatusCreated, code,
		"eligibility is not checked by default")
	igts.Equal(model.LoanStatusActive, l.Status)

	code = igts.call(http.MethodPatch,
		"/loans/"+l.ID.String()+"/return", nil, &l)
	igts.Require().Equal(http.StatusOK, code)
	igts.Equal(model.LoanStatusReturned, l.Status)
	igts.NotNil(l.ReturnDate)

	code = igts.call(http.MethodPatch,
		"/loans/"+uuid.NewString()+"/return", nil, &d)
	igts.Equal(http.StatusNotFound, code)

	errs = nil
	code = igts.call(http.MethodPost, "/loans", H{"book_id": bid}, &errs)
	igts.Equal(http.StatusBadRequest, code)
	igts.Contains(errs, "UserID")
}

func (igts *IntegrationGinTestSuite) TestContents() {
	author := uuid.New()
	var c model.Content
	code := igts.call(http.MethodPost, "/contents", H{
		"title":     "Clube de Leitura",
		"body":      "Encontro **sábado**",
		"format":    "markdown",
		"author_id": author,
	}, &c)
	igts.Require().Equal(http.StatusCreated, code)
	igts.Contains(c.Body, "<strong>sábado</strong>")
	igts.Equal(model.ContentStatusDraft, c.Status)

	code = igts.call(http.MethodPost,
		"/contents/"+c.ID.String()+"/publish", nil, &c)
	igts.Require().Equal(http.StatusOK, code)
	igts.Equal(model.ContentStatusPublished, c.Status)

	var res model.Paged[model.Content]
	code = igts.call(http.MethodGet,
		"/contents?status=publicado&author_id="+author.String(), nil, &res)
	igts.Require().Equal(http.StatusOK, code)
	igts.Equal(1, res.Total)

	var errs map[string][]string
	code = igts.call(http.MethodGet, "/contents?status=arquivado", nil, &errs)
	igts.Equal(http.StatusBadRequest, code)
	igts.Contains(errs, "Status")

	code = igts.call(http.MethodDelete, "/contents/"+c.ID.String(), nil, nil)
	igts.Equal(http.StatusNoContent, code)
	var d detail
	code = igts.call(http.MethodGet, "/contents/"+c.ID.String(), nil, &d)
	igts.Equal(http.StatusNotFound, code)
}

func (igts *IntegrationGinTestSuite) upload(
	filename, data string,
) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	igts.Require().NoError(err)
	_, err = io.WriteString(fw, data)
	igts.Require().NoError(err)
	igts.Require().NoError(mw.Close())
	req, err := http.NewRequestWithContext(
		igts.Ctx, http.MethodPost, routes.BasePath+"/media", &buf,
	)
	igts.Require().NoError(err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return igts.serve(req)
}

func (igts *IntegrationGinTestSuite) TestMedia() {
	w := igts.upload("notes.txt", "hello media")
	igts.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var m model.Media
	igts.Require().NoError(json.Unmarshal(w.Body.Bytes(), &m))
	igts.Equal("/media/"+m.Key, m.URL)
	igts.Equal(int64(len("hello media")), m.Size)

	req, err := http.NewRequestWithContext(
		igts.Ctx, http.MethodGet, m.URL, nil,
	)
	igts.Require().NoError(err)
	w = igts.serve(req)
	igts.Equal(http.StatusOK, w.Code)
	igts.Equal("hello media", w.Body.String())

	code := igts.call(http.MethodDelete, "/media/"+m.Key, nil, nil)
	igts.Equal(http.StatusNoContent, code)
	var d detail
	code = igts.call(http.MethodDelete, "/media/"+m.Key, nil, &d)
	igts.Equal(http.StatusNotFound, code)

	w = igts.upload("big.txt", string(bytes.Repeat([]byte("a"), 2048)))
	igts.Equal(http.StatusBadRequest, w.Code)

	code = igts.call(http.MethodPost, "/media", H{}, nil)
	igts.Equal(http.StatusBadRequest, code, "multipart body is required")
}

func (igts *IntegrationGinTestSuite) TestCORS() {
	for _, tc := range []struct {
		name, method, path, origin string
		code                       int
		allowed                    bool
	}{
		{"preflight", http.MethodOptions, "/books", allowedOrigin, 200, true},
		{"preflight unknown route", http.MethodOptions, "/nothing", allowedOrigin, 200, true},
		{"preflight other origin", http.MethodOptions, "/books", "http://evil.test", 200, false},
		{"simple request", http.MethodGet, "/books", allowedOrigin, 200, true},
		{"other origin", http.MethodGet, "/books", "http://evil.test", 200, false},
		{"no origin", http.MethodGet, "/books", "", 200, false},
	} {
		igts.Run(tc.name, func() {
			req, err := http.NewRequestWithContext(
				igts.Ctx, tc.method, routes.BasePath+tc.path, nil,
			)
			igts.Require().NoError(err)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			req.Header.Set("Access-Control-Request-Headers", "X-Trace-Id")
			w := igts.serve(req)
			igts.Equal(tc.code, w.Code)
			h := w.Header()
			if !tc.allowed {
				igts.Empty(h.Get("Access-Control-Allow-Origin"))
				return
			}
			igts.Equal(tc.origin, h.Get("Access-Control-Allow-Origin"))
			igts.Equal(gin.CORSAllowedMethods, h.Get("Access-Control-Allow-Methods"))
			igts.Equal("true", h.Get("Access-Control-Allow-Credentials"))
			igts.Equal("1800", h.Get("Access-Control-Max-Age"))
			igts.Equal("Origin", h.Get("Vary"))
			if tc.method == http.MethodOptions {
				igts.Equal("X-Trace-Id", h.Get("Access-Control-Allow-Headers"))
				igts.Zero(w.Body.Len())
			} else {
				igts.Equal(gin.CORSAllowedHeaders, h.Get("Access-Control-Allow-Headers"))
			}
		})
	}
}
