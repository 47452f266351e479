package models

// EmailOptInKey ключ, под которым хранится согласие на рассылку организации.
const EmailOptInKey = "email-optin"

// LanguagePreferenceKey ключ пользовательской настройки языка интерфейса.
const LanguagePreferenceKey = "pref-lang"

// OrgEmailPreference хранит согласие пользователя на рассылку конкретной
// организации. Значение хранится текстом: "True" или "False".
type OrgEmailPreference struct {
	Username string // Имя пользователя
	Org      string // Организация, к которой относится настройка
	Key      string // Ключ настройки, всегда email-optin
	Value    string // Значение настройки
}
