package middleware

import (
	"bytes"
	"encoding/base64"

	"github.com/valyala/fasthttp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	dbpkg "insightboard/internal/db"
)

// AdminAuth guards operator endpoints with HTTP Basic auth checked
// against the bootstrap admin user's bcrypt hash.
func AdminAuth(db *gorm.DB) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			username, password, ok := basicCredentials(ctx)
			if !ok {
				challenge(ctx)
				return
			}

			var user dbpkg.User
			if err := db.Where("username = ? AND is_admin = ?", username, true).First(&user).Error; err != nil {
				challenge(ctx)
				return
			}
			if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
				challenge(ctx)
				return
			}

			next(ctx)
		}
	}
}

func basicCredentials(ctx *fasthttp.RequestCtx) (username, password string, ok bool) {
	auth := ctx.Request.Header.Peek("Authorization")
	const prefix = "Basic "
	if !bytes.HasPrefix(auth, []byte(prefix)) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(string(auth[len(prefix):]))
	if err != nil {
		return "", "", false
	}
	parts := bytes.SplitN(decoded, []byte(":"), 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return string(parts[0]), string(parts[1]), true
}

func challenge(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.Set("WWW-Authenticate", `Basic realm="insightboard"`)
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.SetBodyString("unauthorized")
}
