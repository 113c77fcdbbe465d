package middleware

import (
	"net/http"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
	"github.com/vfg2006/meta-ads-sync/pkg/apiErrors"
)

// RoleMiddleware cria um middleware que restringe o acesso com base no papel do token
func RoleMiddleware(allowedRoles []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !slices.Contains(allowedRoles, userClaims.Role) {
				logrus.Warningf("Acesso negado para usuário %s, papel=%s", userClaims.UserID(), userClaims.Role)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ServiceOnly permite apenas tokens de serviço (agendadores e funções internas)
func ServiceOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleServiceRole})
}

// Authenticated permite usuários logados e tokens de serviço
func Authenticated() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleAuthenticated, domain.RoleServiceRole})
}
