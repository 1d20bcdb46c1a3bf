package services

import (
	"fmt"

	"github.com/openpair/roundrobin/models"
	"github.com/openpair/roundrobin/storage"
)

// populateTournamentLogoURL превращает ключ объекта в публичный URL.
// Ключ наружу не отдаётся (json:"-"), клиент видит только готовую ссылку.
func populateTournamentLogoURL(t *models.Tournament, uploader storage.FileUploader) {
	if t == nil || t.LogoKey == nil || *t.LogoKey == "" || uploader == nil {
		return
	}
	url := uploader.GetPublicURL(*t.LogoKey)
	t.LogoURL = &url
}

// extensionFromContentType возвращает расширение файла для поддерживаемых
// типов изображений логотипа.
func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("unsupported content type: %s", contentType)
	}
}
