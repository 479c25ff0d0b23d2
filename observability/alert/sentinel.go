package alert

import (
	"context"
	"net"
	"strconv"

	"github.com/code19m/errx"
	sentinelpb "github.com/code19m/sentinel/pb"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// SentinelProvider sends alerts to the Sentinel error tracker over gRPC.
// A provider built from a disabled Config accepts every alert and sends nothing.
type SentinelProvider struct {
	cfg Config

	// serviceName is reported as the origin of every alert.
	serviceName string
	// serviceVersion is added to the details of every alert.
	serviceVersion string

	client sentinelpb.SentinelServiceClient
	// conn is nil when the provider is disabled.
	conn *grpc.ClientConn
}

// NewSentinelProvider dials the Sentinel service described by cfg.
// The connection is lazy, so an unreachable Sentinel only surfaces on SendError.
func NewSentinelProvider(cfg Config, serviceName, serviceVersion string) (*SentinelProvider, error) {
	if cfg.Disable {
		return &SentinelProvider{cfg: cfg}, nil
	}

	conn, err := grpc.NewClient(
		net.JoinHostPort(cfg.SentinelHost, strconv.Itoa(cfg.SentinelPort)),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return newSentinelProvider(cfg, serviceName, serviceVersion, conn), nil
}

// newSentinelProvider builds a provider on an already dialed connection.
func newSentinelProvider(cfg Config, serviceName, serviceVersion string, conn *grpc.ClientConn) *SentinelProvider {
	return &SentinelProvider{
		cfg:            cfg,
		serviceName:    serviceName,
		serviceVersion: serviceVersion,
		client:         sentinelpb.NewSentinelServiceClient(conn),
		conn:           conn,
	}
}

// SendError reports a single error to Sentinel.
//
// errCode and msg describe the error, operation names what was running when it
// happened ("command: <name>" for pipeline alerts) and details carries free-form
// context. The service version is always added to details; the caller's map is
// not modified.
//
// The call is detached from ctx cancellation and bounded by cfg.SendTimeout.
// A disabled provider returns nil without sending.
func (sp *SentinelProvider) SendError(
	ctx context.Context,
	errCode, msg, operation string,
	details map[string]string,
) error {
	if sp.cfg.Disable {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sp.cfg.SendTimeout)
	defer cancel()

	payload := make(map[string]string, len(details)+1)
	for k, v := range details {
		payload[k] = v
	}
	payload["service_version"] = sp.serviceVersion

	_, err := sp.client.SendError(ctx, &sentinelpb.ErrorInfo{
		Code:      errCode,
		Message:   msg,
		Service:   sp.serviceName,
		Operation: operation,
		Details:   payload,
	})

	return errx.Wrap(err)
}

// Close closes the gRPC connection to Sentinel. It is a no-op for a disabled provider.
func (sp *SentinelProvider) Close() error {
	if sp.conn != nil {
		return errx.Wrap(sp.conn.Close())
	}
	return nil
}
