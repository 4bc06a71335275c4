package signer

import (
	"fmt"
	"time"

	rtctokenbuilder "github.com/AgoraIO/Tools/DynamicKey/AgoraDynamicKey/go/src/rtctokenbuilder2"

	"github.com/fernwald/rtcgate/internal/core"
)

// RTCSigner builds Agora RTC tokens. Signing is pure computation keyed by
// the application certificate; it performs no I/O and is safe for
// concurrent use.
type RTCSigner struct {
	appID          string
	appCertificate string
}

func New(appID, appCertificate string) (*RTCSigner, error) {
	if appID == "" {
		return nil, fmt.Errorf("app id is required")
	}
	if appCertificate == "" {
		return nil, fmt.Errorf("app certificate is required")
	}
	return &RTCSigner{
		appID:          appID,
		appCertificate: appCertificate,
	}, nil
}

func (s *RTCSigner) AppID() string {
	return s.appID
}

func (s *RTCSigner) Sign(req core.ChannelRequest, expireAt time.Time) (string, error) {
	expireIn := time.Until(expireAt)
	if expireIn <= 0 {
		return "", fmt.Errorf("expiry must be in the future")
	}

	var role rtctokenbuilder.Role = rtctokenbuilder.RolePublisher
	if req.Role == core.RoleSubscriber {
		role = rtctokenbuilder.RoleSubscriber
	}

	// the builder takes lifetimes in seconds; channel join privilege and
	// token validity expire together
	seconds := uint32(expireIn / time.Second)
	token, err := rtctokenbuilder.BuildTokenWithUid(
		s.appID, s.appCertificate, req.Channel, req.UID, role, seconds, seconds)
	if err != nil {
		return "", fmt.Errorf("building rtc token: %w", err)
	}
	return token, nil
}
