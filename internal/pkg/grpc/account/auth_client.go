package account

import (
	"context"
	"fmt"
	"time"

	authpb "github.com/RehanAthallahAzhar/tokohobby-protos/pb/auth"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

const validateTimeout = 5 * time.Second

// TokenInfo is what the account service knows about a bearer token.
type TokenInfo struct {
	Valid        bool
	UserID       string
	Username     string
	Role         string
	ErrorMessage string
}

type AuthClient struct {
	service authpb.AuthServiceClient
	conn    *grpc.ClientConn
	log     *logrus.Logger
}

func NewAuthClient(grpcServerAddress string, log *logrus.Logger) (*AuthClient, error) {
	conn, err := grpc.NewClient(grpcServerAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("can't connect to gRPC server: %w", err)
	}

	return NewAuthClientFromService(authpb.NewAuthServiceClient(conn), conn, log), nil
}

func NewAuthClientFromService(serviceClient authpb.AuthServiceClient, conn *grpc.ClientConn, log *logrus.Logger) *AuthClient {
	return &AuthClient{
		service: serviceClient,
		conn:    conn,
		log:     log,
	}
}

func (c *AuthClient) Close() {
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.log.Warnf("Failed to close gRPC connection: %v", err)
		}
	}
}

// ValidateToken asks the account service whether token is valid. An
// Unauthenticated status is reported as an invalid token, not as an error.
func (c *AuthClient) ValidateToken(ctx context.Context, token string) (TokenInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	res, err := c.service.ValidateToken(ctx, &authpb.ValidateTokenRequest{Token: token})
	if err != nil {
		if st, ok := status.FromError(err); ok && st.Code() == codes.Unauthenticated {
			return TokenInfo{Valid: false, ErrorMessage: st.Message()}, nil
		}
		return TokenInfo{}, fmt.Errorf("account service token validation failed: %w", err)
	}

	if !res.GetIsValid() {
		c.log.Debugf("Token rejected by account service: %s", res.GetErrorMessage())
	}

	return TokenInfo{
		Valid:        res.GetIsValid(),
		UserID:       res.GetUserId(),
		Username:     res.GetUsername(),
		Role:         res.GetRole(),
		ErrorMessage: res.GetErrorMessage(),
	}, nil
}
