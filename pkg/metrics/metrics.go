package metrics

import "github.com/prometheus/client_golang/prometheus"

// NL query outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

var (
	// Latency of each GraphQL root field resolver
	GraphQLResolverDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "intellidash_graphql_resolver_duration_seconds",
		Help:    "Latency of GraphQL root field resolvers",
		Buckets: prometheus.DefBuckets,
	}, []string{"field"})

	GraphQLResolverErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "intellidash_graphql_resolver_errors_total",
		Help: "Total GraphQL resolver errors by field",
	}, []string{"field"})

	// Natural-language queries by outcome
	NLQueryTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "intellidash_nl_query_total",
		Help: "Total natural-language queries by outcome",
	}, []string{"outcome"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "intellidash_http_request_duration_seconds",
		Help:    "Latency of HTTP requests by route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func Init() {
	prometheus.MustRegister(
		GraphQLResolverDuration,
		GraphQLResolverErrors,
		NLQueryTotal,
		HTTPRequestDuration,
	)
}
