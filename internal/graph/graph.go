// Package graph serves the GraphQL API.
package graph

import (
	"context"
	_ "embed"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.uber.org/zap"

	"scheduling-api/internal/account"
	"scheduling-api/internal/apperr"
	"scheduling-api/internal/middleware"
	"scheduling-api/internal/scheduling"
)

//go:embed schema.graphql
var schemaSDL string

// Resolver is the root of both Query and Mutation.
type Resolver struct {
	accounts *account.Service
	sched    *scheduling.Service
	log      *zap.Logger
}

// Handler parses the schema against the resolvers and returns the HTTP
// endpoint. The caller, if any, is read from the request context.
func Handler(accounts *account.Service, sched *scheduling.Service, log *zap.Logger) (http.Handler, error) {
	r := &Resolver{accounts: accounts, sched: sched, log: log}
	schema, err := graphql.ParseSchema(schemaSDL, r, graphql.MaxDepth(8))
	if err != nil {
		return nil, err
	}
	return &relay.Handler{Schema: schema}, nil
}

// resolverError carries the error classification in extensions.code.
type resolverError struct {
	msg  string
	kind apperr.Kind
}

func (e *resolverError) Error() string { return e.msg }

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.kind.String()}
}

func (r *Resolver) fail(op string, err error) error {
	k := apperr.KindOf(err)
	if k == apperr.KindInternal {
		r.log.Error("graphql resolver failed", zap.String("op", op), zap.Error(err))
	}
	return &resolverError{msg: apperr.Message(err), kind: k}
}

func (r *Resolver) caller(ctx context.Context) (string, error) {
	uid, ok := middleware.UserID(ctx)
	if !ok {
		return "", r.fail("auth", apperr.With(apperr.ErrUnauthenticated, "authentication required"))
	}
	return uid, nil
}
