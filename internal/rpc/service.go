package rpc

import (
	"context"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"org-calendar-api/internal/calendar"
	"org-calendar-api/internal/middleware"
)

const (
	ServiceName   = "calendar.v1.CalendarService"
	GetFeedMethod = "/" + ServiceName + "/GetFeed"
)

type CalendarServer interface {
	GetFeed(ctx context.Context, req *FeedRequest) (*FeedResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalendarServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetFeed", Handler: getFeedHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "calendar/v1/calendar.proto",
}

func getFeedHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(FeedRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServer).GetFeed(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetFeedMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CalendarServer).GetFeed(ctx, req.(*FeedRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Register adds the calendar service to s. The server must be created with
// ServerOptions so requests are decoded with Codec.
func Register(s grpc.ServiceRegistrar, srv CalendarServer) {
	s.RegisterService(&serviceDesc, srv)
}

func ServerOptions() []grpc.ServerOption {
	return []grpc.ServerOption{grpc.ForceServerCodec(Codec{})}
}

// Server serves the feed over gRPC.
type Server struct {
	agg *calendar.Aggregator
	log *logrus.Entry
}

func NewServer(agg *calendar.Aggregator, log *logrus.Entry) *Server {
	return &Server{agg: agg, log: log.WithField("component", "grpc")}
}

// GetFeed uses the authenticated identity when there is one, and the
// request's user id otherwise.
func (s *Server) GetFeed(ctx context.Context, req *FeedRequest) (*FeedResponse, error) {
	viewer := middleware.ViewerFrom(ctx)
	if viewer == "" {
		viewer = req.UserID
	}
	month := ""
	if req.Month != 0 {
		month = strconv.Itoa(int(req.Month))
	}

	feed, w, err := s.agg.Feed(ctx, calendar.Request{
		Year:   strconv.Itoa(int(req.Year)),
		Month:  month,
		Viewer: viewer,
	})
	switch {
	case err == nil:
		return toResponse(feed), nil
	case errors.Is(err, calendar.ErrInvalidRequest):
		return nil, status.Error(codes.InvalidArgument, err.Error())
	default:
		s.log.WithError(err).WithField("window", w.String()).Error("calendar feed failed")
		return nil, status.Error(codes.Internal, "failed to load calendar")
	}
}

// Client calls the calendar service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) GetFeed(ctx context.Context, req *FeedRequest, opts ...grpc.CallOption) (*FeedResponse, error) {
	out := new(FeedResponse)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := c.cc.Invoke(ctx, GetFeedMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
