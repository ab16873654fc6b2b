package rbac_test

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
	"github.com/davidrq/proyecto-blog/internal/rbac"
	"github.com/davidrq/proyecto-blog/internal/server"
)

type asignacion struct{ a, b int64 }

type fakeStore struct {
	roles    map[int64]string
	permisos map[int64]string

	permisosDeRol []asignacion
	rolesDeUser   []asignacion
}

func (f *fakeStore) ListRoles(ctx context.Context) ([]rbac.Rol, error) {
	var out []rbac.Rol
	for id, nombre := range f.roles {
		out = append(out, rbac.Rol{ID: id, Nombre: nombre})
	}
	return out, nil
}

func (f *fakeStore) GetRol(ctx context.Context, id int64) (*rbac.Rol, error) {
	nombre, ok := f.roles[id]
	if !ok {
		return nil, apperr.NotFound("Rol no encontrado.")
	}
	return &rbac.Rol{ID: id, Nombre: nombre}, nil
}

func (f *fakeStore) CreateRol(ctx context.Context, nombre string) (int64, error) {
	id := int64(len(f.roles) + 1)
	f.roles[id] = nombre
	return id, nil
}

func (f *fakeStore) UpdateRol(ctx context.Context, id int64, nombre string) error {
	if _, ok := f.roles[id]; !ok {
		return apperr.NotFound("Rol no encontrado.")
	}
	f.roles[id] = nombre
	return nil
}

func (f *fakeStore) DeleteRol(ctx context.Context, id int64) error {
	if _, ok := f.roles[id]; !ok {
		return apperr.NotFound("Rol no encontrado.")
	}
	delete(f.roles, id)
	return nil
}

func (f *fakeStore) ListPermisos(ctx context.Context) ([]rbac.Permiso, error) {
	var out []rbac.Permiso
	for id, nombre := range f.permisos {
		out = append(out, rbac.Permiso{ID: id, Nombre: nombre})
	}
	return out, nil
}

func (f *fakeStore) GetPermiso(ctx context.Context, id int64) (*rbac.Permiso, error) {
	nombre, ok := f.permisos[id]
	if !ok {
		return nil, apperr.NotFound("Permiso no encontrado.")
	}
	return &rbac.Permiso{ID: id, Nombre: nombre}, nil
}

func (f *fakeStore) CreatePermiso(ctx context.Context, nombre string) (int64, error) {
	id := int64(len(f.permisos) + 1)
	f.permisos[id] = nombre
	return id, nil
}

func (f *fakeStore) UpdatePermiso(ctx context.Context, id int64, nombre string) error {
	if _, ok := f.permisos[id]; !ok {
		return apperr.NotFound("Permiso no encontrado.")
	}
	f.permisos[id] = nombre
	return nil
}

func (f *fakeStore) DeletePermiso(ctx context.Context, id int64) error {
	if _, ok := f.permisos[id]; !ok {
		return apperr.NotFound("Permiso no encontrado.")
	}
	delete(f.permisos, id)
	return nil
}

func (f *fakeStore) AssignPermisoToRol(ctx context.Context, idRol, idPermiso int64) error {
	if _, ok := f.roles[idRol]; !ok {
		return apperr.NotFound("Rol no encontrado.")
	}
	if _, ok := f.permisos[idPermiso]; !ok {
		return apperr.NotFound("Permiso no encontrado.")
	}
	f.permisosDeRol = append(f.permisosDeRol, asignacion{idRol, idPermiso})
	return nil
}

func (f *fakeStore) AssignRolToUsuario(ctx context.Context, idUsuario, idRol int64) error {
	if _, ok := f.roles[idRol]; !ok {
		return apperr.NotFound("Rol no encontrado.")
	}
	f.rolesDeUser = append(f.rolesDeUser, asignacion{idUsuario, idRol})
	return nil
}

func newFake() *fakeStore {
	return &fakeStore{
		roles:    map[int64]string{1: "administrador", 2: "lector"},
		permisos: map[int64]string{1: "crear_articulo"},
	}
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = server.NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func kindOf(t *testing.T, err error) apperr.Kind {
	t.Helper()
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	return ae.Kind
}

func TestCreateRolRequiresNombre(t *testing.T) {
	h := rbac.NewHandler(newFake())

	c, _ := newContext(http.MethodPost, "/rol", `{}`)
	assert.Equal(t, apperr.KindValidation, kindOf(t, h.CreateRol(c)))
}

func TestCreateRol(t *testing.T) {
	store := newFake()
	h := rbac.NewHandler(store)

	c, rec := newContext(http.MethodPost, "/rol", `{"nombre_rol":"editor"}`)
	require.NoError(t, h.CreateRol(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		ID int64 `json:"id_rol"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "editor", store.roles[body.ID])
}

func TestGetRolMissing(t *testing.T) {
	h := rbac.NewHandler(newFake())

	c, _ := newContext(http.MethodGet, "/rol/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")
	assert.Equal(t, apperr.KindNotFound, kindOf(t, h.GetRol(c)))
}

func TestAssignPermisoToMissingRol(t *testing.T) {
	store := newFake()
	h := rbac.NewHandler(store)

	c, _ := newContext(http.MethodPost, "/asignar-permiso", `{"id_rol":9,"id_permiso":1}`)
	assert.Equal(t, apperr.KindNotFound, kindOf(t, h.AssignPermiso(c)))
	assert.Empty(t, store.permisosDeRol)
}

func TestAssignPermiso(t *testing.T) {
	store := newFake()
	h := rbac.NewHandler(store)

	c, rec := newContext(http.MethodPost, "/asignar-permiso", `{"id_rol":2,"id_permiso":1}`)
	require.NoError(t, h.AssignPermiso(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []asignacion{{2, 1}}, store.permisosDeRol)
}

func TestAssignRol(t *testing.T) {
	store := newFake()
	h := rbac.NewHandler(store)

	c, rec := newContext(http.MethodPost, "/usuarios/asignar-rol", `{"id_usuario":7,"id_rol":1}`)
	require.NoError(t, h.AssignRol(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []asignacion{{7, 1}}, store.rolesDeUser)
}

func TestAssignRolRequiresBothIDs(t *testing.T) {
	h := rbac.NewHandler(newFake())

	c, _ := newContext(http.MethodPost, "/usuarios/asignar-rol", `{"id_usuario":7}`)
	assert.Equal(t, apperr.KindValidation, kindOf(t, h.AssignRol(c)))
}

func TestUpdatePermisoMissing(t *testing.T) {
	h := rbac.NewHandler(newFake())

	c, _ := newContext(http.MethodPut, "/permiso/5", `{"nombre_permiso":"editar"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")
	assert.Equal(t, apperr.KindNotFound, kindOf(t, h.UpdatePermiso(c)))
}

func TestDeleteRol(t *testing.T) {
	store := newFake()
	h := rbac.NewHandler(store)

	c, rec := newContext(http.MethodDelete, "/rol/2", "")
	c.SetParamNames("id")
	c.SetParamValues("2")
	require.NoError(t, h.DeleteRol(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, store.roles, int64(2))
}
