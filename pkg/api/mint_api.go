package api

import (
	"context"
	"net"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	apiErrs "github.com/wavesplatform/gomint/pkg/api/errors"
	"github.com/wavesplatform/gomint/pkg/api/types"
	"github.com/wavesplatform/gomint/pkg/errs"
	"github.com/wavesplatform/gomint/pkg/proto"
)

type MintApi struct {
	app    *App
	logger *zap.Logger
}

func NewMintApi(app *App, logger *zap.Logger) *MintApi {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MintApi{app: app, logger: logger}
}

// Handler builds the router with the options.
func (a *MintApi) Handler(opts *RunOptions) (http.Handler, error) {
	if opts == nil {
		opts = DefaultRunOptions()
	}
	return a.routes(opts)
}

func (a *MintApi) Collection(w http.ResponseWriter, _ *http.Request) error {
	return trySendJson(w, a.app.Collection())
}

func (a *MintApi) Supply(w http.ResponseWriter, _ *http.Request) error {
	return trySendJson(w, a.app.Supply())
}

func (a *MintApi) Asset(w http.ResponseWriter, r *http.Request) error {
	s := chi.URLParam(r, "id")
	id, err := proto.NewAssetIDFromString(s)
	if err != nil {
		return apiErrs.NewInvalidAssetIDError(s)
	}
	asset, err := a.app.Asset(id)
	if err != nil {
		return errs.Extend(err, "asset")
	}
	return trySendJson(w, asset)
}

func (a *MintApi) AccountAssets(w http.ResponseWriter, r *http.Request) error {
	owner, err := parseAddress(chi.URLParam(r, "address"))
	if err != nil {
		return err
	}
	account, err := a.app.Account(owner)
	if err != nil {
		return errs.Extend(err, "account assets")
	}
	return trySendJson(w, account)
}

func (a *MintApi) Issue(w http.ResponseWriter, r *http.Request) error {
	var req types.IssueRequest
	if err := tryParseJson(r.Body, &req); err != nil {
		return err
	}
	resp, err := a.app.Issue(r.Context(), callerFromContext(r.Context()), req)
	if err != nil {
		return errs.Extend(err, "issue")
	}
	return sendJsonWithStatus(w, http.StatusCreated, resp)
}

func (a *MintApi) IssueBatch(w http.ResponseWriter, r *http.Request) error {
	var req types.BatchRequest
	if err := tryParseJson(r.Body, &req); err != nil {
		return err
	}
	resp, err := a.app.IssueBatch(r.Context(), callerFromContext(r.Context()), req)
	if err != nil {
		return errs.Extend(err, "issue batch")
	}
	return sendJsonWithStatus(w, http.StatusCreated, resp)
}

func (a *MintApi) SetPrice(w http.ResponseWriter, r *http.Request) error {
	var req types.PriceRequest
	if err := tryParseJson(r.Body, &req); err != nil {
		return err
	}
	if err := a.app.SetPrice(r.Context(), callerFromContext(r.Context()), req); err != nil {
		return errs.Extend(err, "set price")
	}
	return trySendJson(w, a.app.Collection())
}

func (a *MintApi) SetPaused(w http.ResponseWriter, r *http.Request) error {
	var req types.PausedRequest
	if err := tryParseJson(r.Body, &req); err != nil {
		return err
	}
	if err := a.app.SetPaused(r.Context(), callerFromContext(r.Context()), req); err != nil {
		return errs.Extend(err, "set paused")
	}
	return trySendJson(w, a.app.Collection())
}

func (a *MintApi) SetMetadataBase(w http.ResponseWriter, r *http.Request) error {
	var req types.MetadataBaseRequest
	if err := tryParseJson(r.Body, &req); err != nil {
		return err
	}
	if err := a.app.SetMetadataBase(r.Context(), callerFromContext(r.Context()), req); err != nil {
		return errs.Extend(err, "set metadata base")
	}
	return trySendJson(w, a.app.Collection())
}

func (a *MintApi) Withdraw(w http.ResponseWriter, r *http.Request) error {
	// The payout outlives a disconnected client.
	ctx := context.WithoutCancel(r.Context())
	resp, err := a.app.Withdraw(ctx, callerFromContext(r.Context()))
	if err != nil {
		return errs.Extend(err, "withdraw")
	}
	return trySendJson(w, resp)
}

// Run serves the API on the address until the context is done.
func Run(ctx context.Context, address string, a *MintApi, opts *RunOptions) error {
	handler, err := a.Handler(opts)
	if err != nil {
		return err
	}
	apiServer := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		a.logger.Info("Shutting down API...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("Failed to shutdown API server", zap.Error(err))
		}
	}()
	a.logger.Info("Starting API", zap.String("address", address))
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
