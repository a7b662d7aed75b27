// Package grpcweb lets browsers reach ScheduleService. It unwraps
// gRPC-Web frames sent over HTTP/1.1, forwards the payload to the native
// gRPC server and wraps the reply and status back into gRPC-Web frames.
package grpcweb

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"vehicle-service-scheduler/internal/logging"
	"vehicle-service-scheduler/internal/rpc"
)

const (
	frameData    byte = 0x00
	frameTrailer byte = 0x80
	contentType       = "application/grpc-web+proto"
)

// Bridge forwards gRPC-Web calls to the gRPC server over conn.
type Bridge struct {
	conn   *grpc.ClientConn
	logger *logging.Logger
	owned  bool
}

// New dials the gRPC server at addr (e.g. "localhost:50051").
func New(addr string, logger *logging.Logger) (*Bridge, error) {
	conn, err := grpc.NewClient(
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("grpcweb dial: %w", err)
	}
	b := NewWithConn(conn, logger)
	b.owned = true
	return b, nil
}

// NewWithConn reuses an existing connection. Close leaves it open.
func NewWithConn(conn *grpc.ClientConn, logger *logging.Logger) *Bridge {
	if logger == nil {
		logger = logging.Default()
	}
	return &Bridge{conn: conn, logger: logger}
}

func (b *Bridge) Close() {
	if b.owned {
		b.conn.Close()
	}
}

// Handler returns an http.Handler that translates gRPC-Web to gRPC. The
// request path is the full gRPC method name.
func (b *Bridge) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCORS(w, r)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/grpc-web") {
			http.Error(w, "not grpc-web", http.StatusUnsupportedMediaType)
			return
		}

		b.logger.Debug("grpc-web request", "path", r.URL.Path)
		b.forward(w, r)
	})
}

func setCORS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = "*"
	}
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers",
		"Content-Type, X-Grpc-Web, X-User-Agent, Authorization, x-grpc-web")
	h.Set("Access-Control-Expose-Headers",
		"Grpc-Status, Grpc-Message, Grpc-Status-Details-Bin, grpc-status, grpc-message")
	h.Set("Access-Control-Max-Age", "86400")
}

func (b *Bridge) forward(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, codes.Internal, "read body failed")
		return
	}
	payload, err := unframe(body)
	if err != nil {
		writeError(w, codes.InvalidArgument, err.Error())
		return
	}

	md := metadata.MD{}
	if vals := r.Header.Values("Authorization"); len(vals) > 0 {
		md.Set("authorization", vals...)
	}
	if ip := clientIP(r); ip != "" {
		md.Set("x-forwarded-for", ip)
	}
	ctx := metadata.NewOutgoingContext(r.Context(), md)

	resp := &rawMsg{}
	err = b.conn.Invoke(ctx, r.URL.Path, &rawMsg{data: payload}, resp, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		st := status.Convert(err)
		b.logger.Info("grpc-web call failed", "path", r.URL.Path, "code", st.Code().String(), "message", st.Message())
		writeError(w, st.Code(), st.Message())
		return
	}
	writeSuccess(w, resp.data)
}

// clientIP is the browser's address. RealIP may already have replaced
// RemoteAddr with a bare host.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// unframe returns the message of the first data frame:
// 1-byte flag, 4-byte big-endian length, then the payload.
func unframe(body []byte) ([]byte, error) {
	if len(body) < 5 {
		return nil, fmt.Errorf("body too short")
	}
	if body[0] != frameData {
		return nil, fmt.Errorf("unsupported frame flag %#x", body[0])
	}
	n := binary.BigEndian.Uint32(body[1:5])
	if uint64(n)+5 > uint64(len(body)) {
		return nil, fmt.Errorf("incomplete frame")
	}
	return body[5 : 5+n], nil
}

func frame(flag byte, data []byte) []byte {
	f := make([]byte, 5+len(data))
	f[0] = flag
	binary.BigEndian.PutUint32(f[1:5], uint32(len(data)))
	copy(f[5:], data)
	return f
}

// rawMsg wraps already-encoded message bytes.
type rawMsg struct{ data []byte }

// rawCodec passes bytes through untouched. It claims the wire codec's
// name so the server sees the content subtype it expects.
type rawCodec struct{}

func (rawCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(*rawMsg)
	if !ok {
		return nil, fmt.Errorf("grpcweb: unexpected message %T", v)
	}
	return m.data, nil
}

func (rawCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(*rawMsg)
	if !ok {
		return fmt.Errorf("grpcweb: unexpected message %T", v)
	}
	m.data = append([]byte(nil), data...)
	return nil
}

func (rawCodec) Name() string { return rpc.CodecName }

func writeError(w http.ResponseWriter, code codes.Code, msg string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	trailer := fmt.Sprintf("grpc-status:%d\r\ngrpc-message:%s\r\n", code, msg)
	w.Write(frame(frameTrailer, []byte(trailer)))
}

func writeSuccess(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(frame(frameData, data))
	w.Write(frame(frameTrailer, []byte("grpc-status:0\r\n")))
}
