package interceptors

import "google.golang.org/grpc/codes"

// clientError — коды, которые означают ошибку запроса, а не сервера.
func clientError(c codes.Code) bool {
	switch c {
	case codes.InvalidArgument, codes.NotFound, codes.FailedPrecondition, codes.OutOfRange, codes.Canceled:
		return true
	}
	return false
}
