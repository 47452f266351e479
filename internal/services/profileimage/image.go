// Package profileimage содержит проверку и сохранение загружаемых
// изображений профиля.
package profileimage

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MinBytes минимальный размер файла изображения в байтах.
const MinBytes = 4

// ValidationError ошибка проверки загруженного изображения с
// сообщениями для разработчика и для пользователя.
type ValidationError struct {
	DeveloperMessage string
	UserMessage      string
}

func (e *ValidationError) Error() string {
	return e.DeveloperMessage
}

type imageType struct {
	extensions []string
	mimetypes  []string
	magic      [][]byte
}

// Допустимые форматы изображений. Сигнатура файла проверяется по
// магическим байтам, расширение и mimetype должны согласовываться
// между собой.
var imageTypes = map[string]imageType{
	"jpeg": {
		extensions: []string{".jpeg", ".jpg"},
		mimetypes:  []string{"image/jpeg", "image/pjpeg"},
		magic:      [][]byte{{0xFF, 0xD8}},
	},
	"png": {
		extensions: []string{".png"},
		mimetypes:  []string{"image/png"},
		magic:      [][]byte{{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	},
	"gif": {
		extensions: []string{".gif"},
		mimetypes:  []string{"image/gif"},
		magic: [][]byte{
			[]byte("GIF89a"),
			[]byte("GIF87a"),
		},
	},
}

// Service отвечает за проверку и сохранение изображений профиля.
type Service struct {
	maxBytes    int64
	storageRoot string
}

// New создает новый экземпляр Service.
func New(maxBytes int64, storageRoot string) *Service {
	return &Service{
		maxBytes:    maxBytes,
		storageRoot: storageRoot,
	}
}

// Validate проверяет загруженное изображение: размер, расширение
// имени файла, заявленный mimetype и магические байты содержимого.
// Возвращает канонический тип изображения (jpeg, png или gif).
// После успешной проверки курсор чтения возвращается в начало файла,
// чтобы содержимое можно было сохранить целиком.
func (s *Service) Validate(file io.ReadSeeker, filename, mimetype string, size int64) (string, error) {
	const op = "services.profileimage.Validate"

	if size > s.maxBytes {
		return "", &ValidationError{
			DeveloperMessage: fmt.Sprintf("image size %d exceeds maximum %d", size, s.maxBytes),
			UserMessage:      "Загруженный файл слишком большой.",
		}
	}
	if size < MinBytes {
		return "", &ValidationError{
			DeveloperMessage: fmt.Sprintf("image size %d is below minimum %d", size, MinBytes),
			UserMessage:      "Загруженный файл слишком маленький.",
		}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	typ, name, ok := typeByExtension(ext)
	if !ok {
		return "", &ValidationError{
			DeveloperMessage: fmt.Sprintf("unsupported file extension %q", ext),
			UserMessage:      "Файл должен иметь расширение .jpg, .jpeg, .png или .gif.",
		}
	}

	if !contains(typ.mimetypes, strings.ToLower(mimetype)) {
		return "", &ValidationError{
			DeveloperMessage: fmt.Sprintf("mimetype %q does not match extension %q", mimetype, ext),
			UserMessage:      "Тип файла не соответствует его расширению.",
		}
	}

	header := make([]byte, 8)
	n, err := io.ReadFull(file, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !matchesMagic(typ.magic, header[:n]) {
		return "", &ValidationError{
			DeveloperMessage: fmt.Sprintf("file content does not match %s signature", name),
			UserMessage:      "Содержимое файла не соответствует его расширению.",
		}
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return name, nil
}

// Store сохраняет изображение профиля пользователя. imageType —
// канонический тип, возвращённый Validate. Имя файла детерминировано
// определяется пользователем и типом изображения, поэтому повторная
// загрузка перезаписывает предыдущий файл. Возвращает имя
// сохранённого файла.
func (s *Service) Store(file io.Reader, username, imageType string) (string, error) {
	const op = "services.profileimage.Store"

	name := StorageName(username, imageType)
	path := filepath.Join(s.storageRoot, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return name, nil
}

// StorageName возвращает имя файла изображения профиля:
// md5 от имени пользователя плюс расширение канонического типа.
func StorageName(username, imageType string) string {
	sum := md5.Sum([]byte(username))
	return hex.EncodeToString(sum[:]) + "_profile_orig." + imageType
}

func typeByExtension(ext string) (imageType, string, bool) {
	for name, typ := range imageTypes {
		if contains(typ.extensions, ext) {
			return typ, name, true
		}
	}
	return imageType{}, "", false
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func matchesMagic(magic [][]byte, header []byte) bool {
	for _, m := range magic {
		if len(header) >= len(m) && bytes.Equal(header[:len(m)], m) {
			return true
		}
	}
	return false
}
