package proxy_feed_usecase

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/feed_fetch_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/errors"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/security"
)

// ProxyFeedUsecaseInterface defines the CORS proxy operation.
type ProxyFeedUsecaseInterface interface {
	Execute(ctx context.Context, rawURL string) (*domain.FetchedFeed, error)
}

// ProxyFeedUsecase relays a single allowlisted feed document to the browser.
type ProxyFeedUsecase struct {
	fetcher   feed_fetch_port.FeedFetchPort
	allowlist *security.DomainAllowlist
}

var _ ProxyFeedUsecaseInterface = (*ProxyFeedUsecase)(nil)

func NewProxyFeedUsecase(fetcher feed_fetch_port.FeedFetchPort, allowlist *security.DomainAllowlist) *ProxyFeedUsecase {
	return &ProxyFeedUsecase{fetcher: fetcher, allowlist: allowlist}
}

// Execute validates rawURL, refuses hosts outside the allowlist without any
// network call, and maps fetch failures onto HTTP statuses:
// timeout 504, empty body 502, upstream 4xx as-is, upstream 5xx or network 502.
func (u *ProxyFeedUsecase) Execute(ctx context.Context, rawURL string) (*domain.FetchedFeed, error) {
	if rawURL == "" {
		return nil, errors.NewValidationContextError(
			"url parameter is required",
			"usecase", "ProxyFeedUsecase", "validate_url",
			nil,
		)
	}

	parsed, err := u.allowlist.Check(rawURL)
	if err != nil {
		if stderrors.Is(err, security.ErrDomainNotAllowed) {
			return nil, errors.NewForbiddenContextError(
				"domain not allowed",
				"usecase", "ProxyFeedUsecase", "validate_domain",
				stderrors.Join(errors.ErrDomainNotAllowed, err),
				map[string]any{"domain": parsed.Hostname()},
			)
		}
		return nil, errors.NewValidationContextError(
			"invalid url",
			"usecase", "ProxyFeedUsecase", "validate_url",
			map[string]any{"url": rawURL, "reason": err.Error()},
		)
	}

	feed, err := u.fetcher.FetchFeed(ctx, parsed.String())
	if err != nil {
		return nil, mapFetchError(rawURL, err)
	}
	return feed, nil
}

func mapFetchError(rawURL string, err error) error {
	ctx := map[string]any{"url": rawURL}

	failure, ok := domain.AsFetchFailure(err)
	if !ok {
		return errors.NewUnknownContextError(
			"unexpected proxy failure",
			"usecase", "ProxyFeedUsecase", "fetch",
			err, ctx,
		)
	}
	ctx["failure"] = failure.Label()

	switch failure.Kind {
	case domain.FailureTimeout:
		return errors.NewTimeoutContextError(
			"upstream feed timed out",
			"usecase", "ProxyFeedUsecase", "fetch",
			stderrors.Join(errors.ErrOperationTimeout, err), ctx,
		)
	case domain.FailureEmptyBody:
		return errors.NewExternalAPIContextError(
			"upstream returned an empty body",
			"usecase", "ProxyFeedUsecase", "fetch",
			stderrors.Join(errors.ErrEmptyResponse, err), ctx,
		).WithStatus(http.StatusBadGateway)
	case domain.FailureHTTPError:
		if failure.StatusCode >= 400 && failure.StatusCode < 500 {
			return errors.NewUpstreamStatusContextError(
				failure.StatusCode,
				http.StatusText(failure.StatusCode),
				"usecase", "ProxyFeedUsecase", "fetch",
				err, ctx,
			)
		}
		return errors.NewExternalAPIContextError(
			"upstream feed error",
			"usecase", "ProxyFeedUsecase", "fetch",
			err, ctx,
		).WithStatus(http.StatusBadGateway)
	case domain.FailureNetwork:
		return errors.NewExternalAPIContextError(
			"upstream feed unreachable",
			"usecase", "ProxyFeedUsecase", "fetch",
			err, ctx,
		).WithStatus(http.StatusBadGateway)
	case domain.FailureDomainNotAllowed:
		return errors.NewForbiddenContextError(
			"domain not allowed",
			"usecase", "ProxyFeedUsecase", "fetch",
			stderrors.Join(errors.ErrDomainNotAllowed, err), ctx,
		)
	case domain.FailureInvalidURL:
		return errors.NewValidationContextError(
			"invalid url",
			"usecase", "ProxyFeedUsecase", "fetch",
			ctx,
		)
	default:
		return errors.NewUnknownContextError(
			"unexpected proxy failure",
			"usecase", "ProxyFeedUsecase", "fetch",
			err, ctx,
		)
	}
}
