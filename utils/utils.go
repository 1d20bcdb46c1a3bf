package utils

import "github.com/gosimple/slug"

// SlugFromTitle строит URL-безопасный идентификатор турнира из названия.
// Функция чистая: одинаковое название всегда даёт одинаковый слаг,
// уникальность проверяется на уровне сервиса и базы.
func SlugFromTitle(title string) string {
	return slug.Make(title)
}
