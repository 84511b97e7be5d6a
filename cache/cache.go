// Package cache, SELECT sonuçlarını saklayan önbellek arka uçlarını içerir.
//
// Ana paket sonuç kümesini JSON olarak kodlar ve Store'a byte dizisi olarak
// verir; Store değerin içeriğini yorumlamaz.
//
// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com
package cache

import (
	"context"
	"time"
)

// Store, süre sınırlı anahtar/değer önbelleğidir.
type Store interface {
	// Get, anahtarın değerini döndürür. Kayıt yoksa veya süresi dolmuşsa
	// ok false olur; bu durum hata sayılmaz.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set, değeri ttl süresince saklar. ttl <= 0 süresiz demektir.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete, anahtarı önbellekten siler.
	Delete(ctx context.Context, key string) error
}
