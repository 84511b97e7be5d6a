package fluentdb

import (
	"database/sql"
	"maps"

	"github.com/biyonik/go-fluent-db/shape"
)

/*
 * ----------------------------------------------------------------------------
 * FLUENTDB TYPE DEFINITIONS
 * ----------------------------------------------------------------------------
 *
 * Parametre haritası, sonuç satırı, yazma sonucu ve sayfalama tipleri.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// Params, yer tutucu token'ından değere eşlemedir (örn. ":id" -> 5).
// Aynı token ikinci kez yazılırsa son değer geçerlidir.
type Params map[string]any

// Row, kolon adından değere eşlenmiş tek bir sonuç satırıdır.
type Row = shape.Row

// mergeParams, base üzerine extra haritalarını sırayla yazar ve yeni bir
// harita döndürür; base değiştirilmez.
func mergeParams(base Params, extra ...Params) Params {
	out := make(Params, len(base))
	maps.Copy(out, base)
	for _, p := range extra {
		maps.Copy(out, p)
	}
	return out
}

// ----------------------------------------------------------------------------
// Query Result Types
// ----------------------------------------------------------------------------

// QueryResult, bir INSERT, UPDATE veya DELETE işlemi sonucunda veritabanından dönen
// ham yanıtı sarmalayan yapıdır.
type QueryResult struct {
	result sql.Result
}

// NewQueryResult, ham sql.Result nesnesinden bir sonuç nesnesi türetir.
func NewQueryResult(result sql.Result) *QueryResult {
	return &QueryResult{result: result}
}

// LastInsertID, veritabanına son eklenen kaydın kimliğini döndürür.
// PostgreSQL sürücüleri bu özelliği desteklemez; RETURNING kullanılmalıdır.
func (r *QueryResult) LastInsertID() (int64, error) {
	if r == nil || r.result == nil {
		return 0, ErrNoRows
	}
	return r.result.LastInsertId()
}

// RowsAffected, çalıştırılan sorgudan kaç adet satırın etkilendiğini bildirir.
func (r *QueryResult) RowsAffected() (int64, error) {
	if r == nil || r.result == nil {
		return 0, ErrNoRows
	}
	return r.result.RowsAffected()
}

// ----------------------------------------------------------------------------
// Pagination Types
// ----------------------------------------------------------------------------

// Pagination, SelectBuilder.Paginate tarafından döndürülen sayfa bilgisidir.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasMore    bool  `json:"has_more"`
}

// NewPagination, ham sayfalama parametrelerinden bir Pagination oluşturur.
// Geçersiz sayfa 1'e, geçersiz sayfa boyutu 15'e çekilir.
func NewPagination(page, perPage int, total int64) *Pagination {
	if perPage <= 0 {
		perPage = 15
	}
	if page <= 0 {
		page = 1
	}

	totalPages := int(total / int64(perPage))
	if total%int64(perPage) > 0 {
		totalPages++
	}

	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

// Offset, sayfanın ilk kaydından önce atlanacak kayıt sayısıdır.
//
// Örnek: 3. sayfa, sayfa başına 10 kayıt -> Offset = 20.
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// HasPrev, mevcut sayfadan geriye gidilip gidilemeyeceğini kontrol eder.
func (p *Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext, sonraki sayfanın olup olmadığını bildirir.
func (p *Pagination) HasNext() bool {
	return p.HasMore
}
