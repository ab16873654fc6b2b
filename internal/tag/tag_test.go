package tag_test

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
	"github.com/davidrq/proyecto-blog/internal/server"
	"github.com/davidrq/proyecto-blog/internal/tag"
)

type fakeStore struct {
	etiquetas map[int64]string
	nextID    int64
}

func (f *fakeStore) List(ctx context.Context) ([]tag.Etiqueta, error) {
	var out []tag.Etiqueta
	for id, nombre := range f.etiquetas {
		out = append(out, tag.Etiqueta{ID: id, Nombre: nombre})
	}
	return out, nil
}

func (f *fakeStore) Get(ctx context.Context, id int64) (*tag.Etiqueta, error) {
	nombre, ok := f.etiquetas[id]
	if !ok {
		return nil, apperr.NotFound("Etiqueta no encontrada.")
	}
	return &tag.Etiqueta{ID: id, Nombre: nombre}, nil
}

func (f *fakeStore) Create(ctx context.Context, nombre string) (int64, error) {
	f.nextID++
	f.etiquetas[f.nextID] = nombre
	return f.nextID, nil
}

func (f *fakeStore) Update(ctx context.Context, id int64, nombre string) error {
	if _, ok := f.etiquetas[id]; !ok {
		return apperr.NotFound("Etiqueta no encontrada.")
	}
	f.etiquetas[id] = nombre
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.etiquetas[id]; !ok {
		return apperr.NotFound("Etiqueta no encontrada.")
	}
	delete(f.etiquetas, id)
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
	store := &fakeStore{etiquetas: map[int64]string{}}
	h := tag.NewHandler(store)

	c, rec := newContext(http.MethodPost, "/etiquetas", `{"nombre_etiqueta":"golang"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		ID int64 `json:"id_etiqueta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "golang", store.etiquetas[body.ID])
}

func TestCreateRequiresNombre(t *testing.T) {
	h := tag.NewHandler(&fakeStore{etiquetas: map[int64]string{}})

	c, _ := newContext(http.MethodPost, "/etiquetas", `{"nombre_etiqueta":""}`)
	err := h.Create(c)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
}

func TestGetMissing(t *testing.T) {
	h := tag.NewHandler(&fakeStore{etiquetas: map[int64]string{}})

	c, _ := newContext(http.MethodGet, "/etiquetas/8", "")
	c.SetParamNames("id")
	c.SetParamValues("8")
	err := h.Get(c)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindNotFound, ae.Kind)
	assert.Equal(t, "Etiqueta no encontrada.", ae.Mensaje)
}

func TestUpdateAndDelete(t *testing.T) {
	store := &fakeStore{etiquetas: map[int64]string{1: "go"}, nextID: 1}
	h := tag.NewHandler(store)

	c, rec := newContext(http.MethodPut, "/etiquetas/1", `{"nombre_etiqueta":"golang"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "golang", store.etiquetas[1])

	c, rec = newContext(http.MethodDelete, "/etiquetas/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.etiquetas)
}
