package health

import (
	"context"
	"fmt"
)

// Sender delivers one encoded request to the modem.
// Implemented by modem.Link.
type Sender interface {
	Send(ctx context.Context, req OutboundRequest) error
}

// Client sends Health Client requests to one model instance.
type Client struct {
	sender        Sender
	instanceIndex uint16
}

// NewClient creates a client bound to a sender and model instance.
func NewClient(sender Sender, instanceIndex uint16) *Client {
	return &Client{sender: sender, instanceIndex: instanceIndex}
}

// InstanceIndex returns the model instance the client addresses.
func (c *Client) InstanceIndex() uint16 {
	return c.instanceIndex
}

// AttentionGet sends Attention Get.
func (c *Client) AttentionGet(ctx context.Context) error {
	return c.send(ctx)(EncodeAttentionGet(c.instanceIndex))
}

// AttentionSet sends Attention Set or its unacknowledged variant.
func (c *Client) AttentionSet(ctx context.Context, seconds int, unacknowledged bool) error {
	return c.send(ctx)(EncodeAttentionSet(c.instanceIndex, seconds, unacknowledged))
}

// FaultGet sends Fault Get for a hexadecimal company id.
func (c *Client) FaultGet(ctx context.Context, companyID string) error {
	return c.send(ctx)(EncodeFaultGet(c.instanceIndex, companyID))
}

// FaultClear sends Fault Clear or its unacknowledged variant.
func (c *Client) FaultClear(ctx context.Context, companyID string, unacknowledged bool) error {
	return c.send(ctx)(EncodeFaultClear(c.instanceIndex, companyID, unacknowledged))
}

// FaultTest sends Fault Test or its unacknowledged variant.
func (c *Client) FaultTest(ctx context.Context, companyID string, testID int, unacknowledged bool) error {
	return c.send(ctx)(EncodeFaultTest(c.instanceIndex, companyID, testID, unacknowledged))
}

// PeriodGet sends Health Period Get.
func (c *Client) PeriodGet(ctx context.Context) error {
	return c.send(ctx)(EncodePeriodGet(c.instanceIndex))
}

// PeriodSet sends Health Period Set or its unacknowledged variant.
func (c *Client) PeriodSet(ctx context.Context, divider int, unacknowledged bool) error {
	return c.send(ctx)(EncodePeriodSet(c.instanceIndex, divider, unacknowledged))
}

// send returns a function that forwards a successfully encoded request.
// Encode errors are returned untouched so callers can match ErrRange/ErrFormat.
func (c *Client) send(ctx context.Context) func(OutboundRequest, error) error {
	return func(req OutboundRequest, err error) error {
		if err != nil {
			return err
		}
		if err := c.sender.Send(ctx, req); err != nil {
			return fmt.Errorf("send %s: %w", req.Opcode, err)
		}
		return nil
	}
}
