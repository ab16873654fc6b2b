package article

import "time"

// Articulo is the articulos row.
type Articulo struct {
	ID               int64     `json:"id_articulo"`
	IDUsuario        int64     `json:"id_usuario"`
	Titulo           string    `json:"titulo"`
	Contenido        string    `json:"contenido"`
	ImagenCover      *string   `json:"imagen_cover"`
	Estado           string    `json:"estado"`
	FechaPublicacion time.Time `json:"fecha_publicacion"`
}

// Resumen is a listing row with the author's name left-joined on.
type Resumen struct {
	ID               int64     `json:"id_articulo"`
	FechaPublicacion time.Time `json:"fecha_publicacion"`
	Titulo           string    `json:"titulo"`
	Contenido        string    `json:"contenido"`
	NombreUsuario    *string   `json:"nombre_usuario"`
}

// ConAutor is an article with its author's name inner-joined on.
type ConAutor struct {
	Articulo
	Nombre string `json:"nombre"`
}

// CategoriaRef and EtiquetaRef are the {id, nombre} pairs embedded in the
// article detail.
type CategoriaRef struct {
	ID     int64  `json:"id_categoria"`
	Nombre string `json:"nombre_categoria"`
}

type EtiquetaRef struct {
	ID     int64  `json:"id_etiqueta"`
	Nombre string `json:"nombre_etiqueta"`
}

// Detalle is the single-article view: author, scalars and the nested
// classifier arrays.
type Detalle struct {
	IDUsuario        int64          `json:"id_usuario"`
	Nombre           string         `json:"nombre"`
	ID               int64          `json:"id_articulo"`
	Titulo           string         `json:"titulo"`
	Contenido        string         `json:"contenido"`
	ImagenCover      *string        `json:"imagen_cover"`
	Estado           string         `json:"estado"`
	FechaPublicacion time.Time      `json:"fecha_publicacion"`
	Categorias       []CategoriaRef `json:"categorias"`
	Etiquetas        []EtiquetaRef  `json:"etiquetas"`
}

// PorCategoria is an article row in a category listing.
type PorCategoria struct {
	ID              int64   `json:"id_articulo"`
	Titulo          string  `json:"titulo"`
	Contenido       string  `json:"contenido"`
	ImagenCover     *string `json:"imagen_cover"`
	Estado          string  `json:"estado"`
	NombreCategoria string  `json:"nombre_categoria"`
}

// CreateParams carries a new article and its classifier assignments.
type CreateParams struct {
	IDUsuario   int64
	Titulo      string
	Contenido   string
	ImagenCover *string
	Estado      string
	Etiquetas   []int64
	Categorias  []int64
}

// UpdateParams carries a full-row article update. A nil Etiquetas or
// Categorias leaves that relation untouched; a non-nil (possibly empty)
// slice replaces it wholesale.
type UpdateParams struct {
	IDUsuario   int64
	Titulo      string
	Contenido   string
	ImagenCover *string
	Estado      string
	Etiquetas   *[]int64
	Categorias  *[]int64
}
