package dataflow

import (
	"context"

	"github.com/pkg/errors"
	df "google.golang.org/api/dataflow/v1b3"
	"google.golang.org/api/option"
)

// ConnectionDetails identifies the Dataflow project and region the harness
// submits jobs to.
type ConnectionDetails struct {
	Project  string
	Region   string
	Endpoint string
}

func (c *ConnectionDetails) Validate() error {
	if c.Project == "" {
		return errors.New("no project specified")
	}
	if c.Region == "" {
		return errors.New("no region specified")
	}
	return nil
}

// CreateService builds the Dataflow API client. Credentials are resolved
// through the standard Google application-default chain.
func CreateService(ctx context.Context, conn *ConnectionDetails) (*df.Service, error) {
	if err := conn.Validate(); err != nil {
		return nil, err
	}
	opts := []option.ClientOption{option.WithScopes(df.CloudPlatformScope)}
	if conn.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(conn.Endpoint))
	}
	svc, err := df.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.WithMessage(err, "creating dataflow service")
	}
	return svc, nil
}
