// @title           GBCE Stock Exchange API
// @version         1.0
// @description     Trades, stock metrics and share indices of the Global Beverage Corporation Exchange
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	appstocks "gbce/internal/application/service/stocks"
	domain "gbce/internal/domain/entity/stocks"
	"gbce/internal/infrastructure/catalog"
	"gbce/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	stocksBasePath  = "/api/v1/stocks"
	indicesBasePath = "/api/v1/indices"
	metricsPath     = "/metrics"
)

var errBadSince = errors.New("since must be an RFC3339 timestamp")

type Handler struct {
	router   *gin.Engine
	stocks   *appstocks.Service
	cache    ResponseCache
	cacheTTL time.Duration
	metrics  *observability.Metrics
}

var _ http.Handler = (*Handler)(nil)

type Option func(*Handler)

// WithCache serves repeated GET requests from cache for ttl.
func WithCache(cache ResponseCache, ttl time.Duration) Option {
	return func(h *Handler) {
		h.cache = cache
		h.cacheTTL = ttl
	}
}

// WithMetrics exposes the Prometheus registry on /metrics.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(h *Handler) {
		h.metrics = metrics
	}
}

func NewHandler(svc *appstocks.Service, opts ...Option) *Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	h := &Handler{
		router: router,
		stocks: svc,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.registerRoutes()
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if h.metrics != nil {
		h.router.GET(metricsPath, gin.WrapH(h.metrics.Handler()))
	}

	st := h.router.Group(stocksBasePath)
	if h.cache != nil && h.cacheTTL > 0 {
		st.Use(h.cacheMiddleware())
	}
	{
		st.GET("", h.listStocks)
		st.GET("/:symbol", h.getQuote)
		st.GET("/:symbol/trades", h.getTrades)
		st.GET("/:symbol/trades/last", h.getLastTrade)
		st.GET("/:symbol/vwap", h.getVolumeWeightedPrice)
		st.GET("/:symbol/pe-ratio", h.getPERatio)
		st.GET("/:symbol/dividend-yield", h.getDividendYield)
		st.POST("/:symbol/buy", h.buy)
		st.POST("/:symbol/sell", h.sell)
	}

	idx := h.router.Group(indicesBasePath)
	if h.cache != nil && h.cacheTTL > 0 {
		idx.Use(h.cacheMiddleware())
	}
	{
		idx.GET("", h.listIndices)
		idx.GET("/:name", h.getIndex)
	}
}

// Stocks handlers

// listStocks godoc
// @Summary      List stocks
// @Description  Quote every listed stock, ordered by symbol
// @Tags         stocks
// @Produce      json
// @Success      200  {array}   appstocks.Quote
// @Failure      500  {object}  map[string]string
// @Router       /stocks [get]
func (h *Handler) listStocks(c *gin.Context) {
	list := h.stocks.Stocks()
	quotes := make([]*appstocks.Quote, 0, len(list))
	for _, stock := range list {
		quote, err := h.stocks.Quote(stock.Symbol())
		if err != nil {
			writeError(c, statusOf(err), err)
			return
		}
		quotes = append(quotes, quote)
	}
	c.JSON(http.StatusOK, quotes)
}

// getQuote godoc
// @Summary      Get quote
// @Description  Reference data, last trade and every metric of one stock, computed from one view of its ledger
// @Tags         stocks
// @Produce      json
// @Param        symbol  path      string  true  "Stock symbol, case-insensitive"
// @Success      200     {object}  appstocks.Quote
// @Failure      404     {object}  map[string]string
// @Router       /stocks/{symbol} [get]
func (h *Handler) getQuote(c *gin.Context) {
	quote, err := h.stocks.Quote(c.Param("symbol"))
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// getTrades godoc
// @Summary      List trades
// @Description  Every trade of the stock in chronological order
// @Tags         trades
// @Produce      json
// @Param        symbol  path      string  true  "Stock symbol, case-insensitive"
// @Success      200     {array}   stocks.TradeView
// @Failure      404     {object}  map[string]string
// @Router       /stocks/{symbol}/trades [get]
func (h *Handler) getTrades(c *gin.Context) {
	trades, err := h.stocks.Trades(c.Param("symbol"))
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusOK, trades)
}

// getLastTrade godoc
// @Summary      Get last trade
// @Description  Most recent trade of the stock; last_trade is null before the first trade
// @Tags         trades
// @Produce      json
// @Param        symbol  path      string  true  "Stock symbol, case-insensitive"
// @Success      200     {object}  lastTradeResponse
// @Failure      404     {object}  map[string]string
// @Router       /stocks/{symbol}/trades/last [get]
func (h *Handler) getLastTrade(c *gin.Context) {
	stock, err := h.stocks.Stock(c.Param("symbol"))
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	resp := lastTradeResponse{Symbol: stock.Symbol()}
	if trade, ok := stock.LastTrade(); ok {
		view := trade.View()
		resp.LastTrade = &view
	}
	c.JSON(http.StatusOK, resp)
}

// getVolumeWeightedPrice godoc
// @Summary      Get volume weighted price
// @Description  VWAP of the trades of the last 5 minutes, or of every trade at or after since; null when no trade qualifies
// @Tags         metrics
// @Produce      json
// @Param        symbol  path      string  true   "Stock symbol, case-insensitive"
// @Param        since   query     string  false  "RFC3339 cutoff, inclusive"
// @Success      200     {object}  metricResponse
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /stocks/{symbol}/vwap [get]
func (h *Handler) getVolumeWeightedPrice(c *gin.Context) {
	since, err := parseSinceQuery(c)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	stock, err := h.stocks.Stock(c.Param("symbol"))
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	value, err := h.stocks.VolumeWeightedPrice(stock.Symbol(), since)
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusOK, metricResponse{Symbol: stock.Symbol(), Metric: "volume_weighted_price", Since: since, Value: value})
}

// getPERatio godoc
// @Summary      Get P/E ratio
// @Description  Last trade price divided by the last dividend; null before the first trade or when no dividend was paid
// @Tags         metrics
// @Produce      json
// @Param        symbol  path      string  true  "Stock symbol, case-insensitive"
// @Success      200     {object}  metricResponse
// @Failure      404     {object}  map[string]string
// @Router       /stocks/{symbol}/pe-ratio [get]
func (h *Handler) getPERatio(c *gin.Context) {
	stock, err := h.stocks.Stock(c.Param("symbol"))
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	value, err := h.stocks.PERatio(stock.Symbol())
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusOK, metricResponse{Symbol: stock.Symbol(), Metric: "pe_ratio", Value: value})
}

// getDividendYield godoc
// @Summary      Get dividend yield
// @Description  Common: last dividend / price. Preferred: fixed dividend % of par / price. Null before the first trade
// @Tags         metrics
// @Produce      json
// @Param        symbol  path      string  true  "Stock symbol, case-insensitive"
// @Success      200     {object}  metricResponse
// @Failure      404     {object}  map[string]string
// @Router       /stocks/{symbol}/dividend-yield [get]
func (h *Handler) getDividendYield(c *gin.Context) {
	stock, err := h.stocks.Stock(c.Param("symbol"))
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	value, err := h.stocks.DividendYield(stock.Symbol())
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusOK, metricResponse{Symbol: stock.Symbol(), Metric: "dividend_yield", Value: value})
}

// buy godoc
// @Summary      Buy
// @Description  Record a buy trade stamped with the exchange clock
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        symbol  path      string        true  "Stock symbol, case-insensitive"
// @Param        trade   body      tradePayload  true  "Quantity and price"
// @Success      201     {object}  stocks.TradeView
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /stocks/{symbol}/buy [post]
func (h *Handler) buy(c *gin.Context) {
	h.trade(c, domain.TradeSideBuy)
}

// sell godoc
// @Summary      Sell
// @Description  Record a sell trade stamped with the exchange clock
// @Tags         trades
// @Accept       json
// @Produce      json
// @Param        symbol  path      string        true  "Stock symbol, case-insensitive"
// @Param        trade   body      tradePayload  true  "Quantity and price"
// @Success      201     {object}  stocks.TradeView
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /stocks/{symbol}/sell [post]
func (h *Handler) sell(c *gin.Context) {
	h.trade(c, domain.TradeSideSell)
}

func (h *Handler) trade(c *gin.Context, side domain.TradeSide) {
	var payload tradePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	order := &domain.Order{
		Symbol:   c.Param("symbol"),
		Side:     side,
		Quantity: payload.Quantity,
		Price:    payload.Price,
	}
	trade, err := h.stocks.Record(c.Request.Context(), order)
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusCreated, trade.View())
}

// Indices handlers

// listIndices godoc
// @Summary      List indices
// @Description  Calculate every registered share index
// @Tags         indices
// @Produce      json
// @Success      200  {array}  appstocks.IndexValue
// @Router       /indices [get]
func (h *Handler) listIndices(c *gin.Context) {
	c.JSON(http.StatusOK, h.stocks.Indices())
}

// getIndex godoc
// @Summary      Get index
// @Description  Geometric mean of the members' volume weighted prices, rooted over the member count; 0 when no member ever traded
// @Tags         indices
// @Produce      json
// @Param        name  path      string  true  "Index name, case-insensitive"
// @Success      200   {object}  appstocks.IndexValue
// @Failure      404   {object}  map[string]string
// @Router       /indices/{name} [get]
func (h *Handler) getIndex(c *gin.Context) {
	value, err := h.stocks.CalculateIndex(c.Param("name"))
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}
	c.JSON(http.StatusOK, value)
}

// Payloads

type tradePayload struct {
	Quantity int64           `json:"quantity" example:"3"`
	Price    decimal.Decimal `json:"price" swaggertype:"string" example:"12.5"`
}

type lastTradeResponse struct {
	Symbol    string            `json:"symbol" example:"POP"`
	LastTrade *domain.TradeView `json:"last_trade" extensions:"x-nullable"`
}

type metricResponse struct {
	Symbol string              `json:"symbol" example:"POP"`
	Metric string              `json:"metric" example:"pe_ratio"`
	Since  *time.Time          `json:"since,omitempty"`
	Value  decimal.NullDecimal `json:"value" swaggertype:"string" extensions:"x-nullable" example:"44.625"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, catalog.ErrStockNotFound), errors.Is(err, catalog.ErrIndexNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, appstocks.ErrEmptySymbol),
		errors.Is(err, appstocks.ErrInvalidSide),
		errors.Is(err, appstocks.ErrNilOrder):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, status int, err error) {
	if err == nil {
		status = http.StatusInternalServerError
		err = errors.New("unknown error")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// cacheMiddleware caches successful GET responses.
func (h *Handler) cacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.cache == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := h.cacheKey(c)
		ctx := c.Request.Context()

		if cached, ok := h.cache.Get(ctx, key); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: c.Writer,
			status:         http.StatusOK,
			body:           &bytes.Buffer{},
		}
		c.Writer = recorder

		c.Next()

		if recorder.status >= 200 && recorder.status < 300 && recorder.body.Len() > 0 {
			h.cache.Set(ctx, key, recorder.body.Bytes(), h.cacheTTL)
		}
	}
}

type responseRecorder struct {
	gin.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(data []byte) (int, error) {
	if len(data) > 0 {
		r.body.Write(data)
	}
	return r.ResponseWriter.Write(data)
}

// cacheKey uses the concrete path so that every symbol gets its own entry. The ledger
// revision makes every accepted trade retire all earlier entries.
func (h *Handler) cacheKey(c *gin.Context) string {
	return fmt.Sprintf("cache:%s:%s:%s?%s", h.stocks.Revision(), c.Request.Method, c.Request.URL.Path, c.Request.URL.RawQuery)
}

func parseSinceQuery(c *gin.Context) (*time.Time, error) {
	value := c.Query("since")
	if value == "" {
		return nil, nil
	}
	since, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, errBadSince
	}
	return &since, nil
}
