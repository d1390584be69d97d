package auth

// Claims es la identidad del usuario autenticado, extraída del token
// (o del header de debug en modo dev).
type Claims struct {
	UserID string
	Email  string
}
