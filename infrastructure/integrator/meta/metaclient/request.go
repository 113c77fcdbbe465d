package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-ads-sync/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-ads-sync/internal/domain"
)

// maxRateLimitAttempts limita o total de requisições sob rate limit
const maxRateLimitAttempts = 3

// do executa a requisição com a política de rate limit: no máximo
// maxRateLimitAttempts tentativas, aguardando RateLimitBackoff[i] entre elas;
// esgotadas as tentativas retorna ErrMetaRateLimited.
// Token expirado aborta imediatamente, sem novas tentativas.
func (c *MetaClient) do(ctx context.Context, method, requestURL string, form url.Values) ([]byte, error) {
	maxAttempts := min(maxRateLimitAttempts, len(c.cfg.RateLimitBackoff)+1)

	for attempt := 0; ; attempt++ {
		body, err := c.doOnce(ctx, method, requestURL, form)
		if err == nil {
			return body, nil
		}

		if !errors.Is(err, domain.ErrMetaRateLimited) {
			return nil, err
		}

		if attempt+1 >= maxAttempts {
			logrus.WithFields(logrus.Fields{
				"attempts": attempt + 1,
				"path":     redactURL(requestURL),
			}).Warn("meta: rate limit persisted after all retries")
			return nil, err
		}

		wait := c.cfg.RateLimitBackoff[attempt]

		logrus.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"wait":    wait.String(),
			"path":    redactURL(requestURL),
		}).Warn("meta: rate limited, backing off")

		if err := c.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func (c *MetaClient) doOnce(ctx context.Context, method, requestURL string, form url.Values) ([]byte, error) {
	var bodyReader io.Reader
	if form != nil {
		bodyReader = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao fazer a requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	return nil, classifyError(resp.StatusCode, body)
}

// classifyError traduz a resposta de erro da Graph API nos erros de domínio
func classifyError(status int, body []byte) error {
	var errorResp metadomain.ErrorResponse
	parseErr := json.Unmarshal(body, &errorResp)

	if parseErr == nil {
		if errorResp.IsTokenExpired() {
			return errors.Wrapf(domain.ErrMetaTokenExpired, "código %d, subcódigo %d: %s",
				errorResp.Error.Code, errorResp.Error.ErrorSubcode, errorResp.Error.Message)
		}
		if errorResp.IsRateLimited() {
			return errors.Wrapf(domain.ErrMetaRateLimited, "código %d: %s", errorResp.Error.Code, errorResp.Error.Message)
		}
	} else if metadomain.ContainsTokenExpirationMessage(string(body)) {
		return errors.Wrap(domain.ErrMetaTokenExpired, string(body))
	}

	if status == http.StatusTooManyRequests {
		return errors.Wrapf(domain.ErrMetaRateLimited, "status %d", status)
	}

	return fmt.Errorf("erro na resposta da API. Status: %d, Corpo: %s", status, string(body))
}

// getAllPages segue paging.next até esgotar as páginas
func getAllPages[T any](ctx context.Context, c *MetaClient, firstURL string) ([]T, error) {
	items := make([]T, 0)
	next := firstURL
	pages := 0

	for next != "" {
		body, err := c.do(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, err
		}

		var page metadomain.Page[T]
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("erro ao decodificar JSON: %w", err)
		}

		items = append(items, page.Data...)
		pages++
		next = page.Paging.Next
	}

	logrus.WithFields(logrus.Fields{
		"pages": pages,
		"items": len(items),
		"path":  redactURL(firstURL),
	}).Debug("meta: pagination finished")

	return items, nil
}

func (c *MetaClient) endpoint(path string, params url.Values) string {
	return fmt.Sprintf("%s/%s?%s", c.cfg.URL, strings.TrimPrefix(path, "/"), params.Encode())
}

// redactURL remove a query (que contém o token) antes de logar
func redactURL(raw string) string {
	if i := strings.Index(raw, "?"); i >= 0 {
		return raw[:i]
	}
	return raw
}

func accountPath(accountID string) string {
	if strings.HasPrefix(accountID, "act_") {
		return accountID
	}
	return "act_" + accountID
}
