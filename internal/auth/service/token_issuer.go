package service

import (
	"github.com/AlibekovAA/task-manager/internal/common/jwtverify"
	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

type PrincipalSigner interface {
	Issue(p jwtverify.Principal) (string, error)
}

// TokenIssuer turns a stored user into a signed credential.
type TokenIssuer struct {
	signer PrincipalSigner
}

func NewTokenIssuer(signer PrincipalSigner) *TokenIssuer {
	return &TokenIssuer{signer: signer}
}

func (ti *TokenIssuer) IssueAccessToken(user userdomain.User) (string, error) {
	return ti.signer.Issue(jwtverify.Principal{
		UserID:   int64(user.ID),
		Username: user.Username,
	})
}
