package category_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidrq/proyecto-blog/internal/apperr"
	"github.com/davidrq/proyecto-blog/internal/category"
	"github.com/davidrq/proyecto-blog/internal/server"
)

type fakeStore struct {
	categorias map[int64]string
	nextID     int64
}

func (f *fakeStore) List(ctx context.Context) ([]category.Categoria, error) {
	var out []category.Categoria
	for id, nombre := range f.categorias {
		out = append(out, category.Categoria{ID: id, Nombre: nombre})
	}
	return out, nil
}

func (f *fakeStore) Get(ctx context.Context, id int64) (*category.Categoria, error) {
	nombre, ok := f.categorias[id]
	if !ok {
		return nil, apperr.NotFound("Categoría no encontrada.")
	}
	return &category.Categoria{ID: id, Nombre: nombre}, nil
}

func (f *fakeStore) Create(ctx context.Context, nombre string) (int64, error) {
	f.nextID++
	f.categorias[f.nextID] = nombre
	return f.nextID, nil
}

func (f *fakeStore) Update(ctx context.Context, id int64, nombre string) error {
	if _, ok := f.categorias[id]; !ok {
		return apperr.NotFound("Categoría no encontrada.")
	}
	f.categorias[id] = nombre
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.categorias[id]; !ok {
		return apperr.NotFound("Categoría no encontrada.")
	}
	delete(f.categorias, id)
	return nil
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = server.NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreate(t *testing.T) {
	store := &fakeStore{categorias: map[int64]string{}}
	h := category.NewHandler(store)

	c, rec := newContext(http.MethodPost, "/categorias", `{"nombre_categoria":"Tecnología"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		ID int64 `json:"id_categoria"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Tecnología", store.categorias[body.ID])
}

func TestCreateRequiresNombre(t *testing.T) {
	h := category.NewHandler(&fakeStore{categorias: map[int64]string{}})

	c, _ := newContext(http.MethodPost, "/categorias", `{}`)
	err := h.Create(c)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
}

func TestGetMissing(t *testing.T) {
	h := category.NewHandler(&fakeStore{categorias: map[int64]string{}})

	c, _ := newContext(http.MethodGet, "/categorias/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")
	err := h.Get(c)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindNotFound, ae.Kind)
	assert.Equal(t, "Categoría no encontrada.", ae.Mensaje)
}

func TestUpdateAndDelete(t *testing.T) {
	store := &fakeStore{categorias: map[int64]string{1: "Viajes"}, nextID: 1}
	h := category.NewHandler(store)

	c, rec := newContext(http.MethodPut, "/categorias/1", `{"nombre_categoria":"Turismo"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Turismo", store.categorias[1])

	c, rec = newContext(http.MethodDelete, "/categorias/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.categorias)
}

func TestListEmptyIsJSONArray(t *testing.T) {
	h := category.NewHandler(&fakeStore{categorias: map[int64]string{}})

	c, rec := newContext(http.MethodGet, "/categorias", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, "[]\n", rec.Body.String())
}
