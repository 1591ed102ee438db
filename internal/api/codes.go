package api

// CodeUnknown is substituted when the server reports a failure without any
// specific error codes.
const CodeUnknown = 5000

// translations maps every known API error code to its display string.
// Unmapped codes resolve to the empty string and consumers fall back to the
// generic unknown-error message.
var translations = map[int]string{
	// 1000-1006: authentication
	1000: "Se requiere autenticación",
	1001: "Token inválido",
	1002: "La sesión ha expirado",
	1003: "Token revocado",
	1004: "No autorizado para esta operación",
	1005: "La cuenta está deshabilitada",
	1006: "La cuenta no está verificada",

	// 1100-1104: users
	1100: "El usuario ya existe",
	1101: "Usuario no encontrado",
	1102: "Credenciales inválidas",
	1103: "La contraseña no cumple los requisitos",
	1104: "El correo electrónico no es válido",

	// 2000-2004: resources
	2000: "Recurso no encontrado",
	2001: "El recurso ya existe",
	2002: "El recurso está en uso",
	2003: "El recurso fue modificado por otro usuario",
	2004: "Operación no permitida sobre el recurso",

	// 3000-3002: validation
	3000: "Datos de entrada inválidos",
	3001: "Falta un campo obligatorio",
	3002: "El valor está fuera de rango",

	// 5000-5001: server
	5000: "Error desconocido",
	5001: "Servicio no disponible",
}

// Translate resolves a code through the static table. Unknown codes yield "".
func Translate(code int) string {
	return translations[code]
}
