package models

// CompanyInfo is the singleton farm profile shown on reports and the
// login screen. It is always replaced wholesale from the settings form.
type CompanyInfo struct {
	Name            string `json:"name"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	LogoData        string `json:"logoData"` // base64 image payload
	TTSVoice        string `json:"ttsVoice"` // preferred text-to-speech voice id
	Username        string `json:"username"`
	Password        string `json:"password"`
	LoginBackground string `json:"loginBackground"` // base64 image payload
}

// HasCredentials reports whether a username/password pair has ever been
// configured. When false, any login attempt is accepted.
func (c CompanyInfo) HasCredentials() bool {
	return c.Username != "" || c.Password != ""
}
