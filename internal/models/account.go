// Package models содержит доменные структуры учётной записи пользователя:
// саму запись пользователя, регистрацию с ключом активации и профиль
// с демографическими данными. Структуры используются в бизнес-логике
// и при работе с хранилищем.
package models

import "time"

// User представляет учётную запись пользователя платформы.
// Запись создаётся неактивной и становится активной после
// подтверждения ключа активации.
type User struct {
	UUID         string // Уникальный идентификатор пользователя
	Username     string // Имя пользователя (уникальное)
	Email        string // Электронная почта (уникальная)
	PasswordHash string // Хэш пароля пользователя
	IsActive     bool   // Признак активированной учётной записи
}

// Registration связывает учётную запись с одноразовым ключом активации.
// Ключ выдаётся при создании записи и погашается ровно один раз.
type Registration struct {
	Username      string     // Имя пользователя, которому выдан ключ
	ActivationKey string     // Одноразовый ключ активации
	RedeemedAt    *time.Time // Момент погашения ключа, nil — ключ не использован
}

// Profile хранит демографические данные пользователя. Все поля
// необязательные, профиль создаётся пустым вместе с учётной записью.
type Profile struct {
	Username         string // Имя пользователя, владельца профиля
	FullName         string // Полное имя
	Gender           string // Пол
	YearOfBirth      *int   // Год рождения, nil — не указан
	Language         string // Предпочитаемый язык
	Goals            string // Цели обучения
	LevelOfEducation string // Уровень образования
	MailingAddress   string // Почтовый адрес
	Country          string // Страна
}

// AccountInfo краткая информация об учётной записи, отдаваемая наружу.
type AccountInfo struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

