package notify

import (
	"go.uber.org/zap"
)

// Dispatcher turns validated requests into Notifications and delivers them.
// Delivery is fire-and-forget: no acknowledgment is awaited and a failed send
// to one connection never aborts the rest of a fan-out.
type Dispatcher struct {
	reg     *Registry
	log     *zap.Logger
	metrics *Metrics
}

func NewDispatcher(reg *Registry, log *zap.Logger, m *Metrics) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{reg: reg, log: log, metrics: m}
}

// Dispatch builds a Notification and sends it to the target connection, or to
// every connection in the registry snapshot when req.TargetID is empty. A
// target id that is no longer registered drops the notification silently; the
// client may have disconnected between request and dispatch.
func (d *Dispatcher) Dispatch(req Request) (Notification, error) {
	if err := req.Validate(); err != nil {
		return Notification{}, err
	}

	n := NewNotification(req)

	if req.TargetID != "" {
		conn, ok := d.reg.Find(req.TargetID)
		if !ok {
			d.log.Debug("notification target gone, dropping",
				zap.String("notification_id", n.ID),
				zap.String("target_id", req.TargetID))
			return n, nil
		}
		d.metrics.recordDispatch("unicast")
		d.deliver(conn, n)
		return n, nil
	}

	conns := d.reg.Snapshot()
	d.metrics.recordDispatch("broadcast")
	for _, conn := range conns {
		d.deliver(conn, n)
	}
	d.log.Debug("notification broadcast",
		zap.String("notification_id", n.ID),
		zap.Int("recipients", len(conns)))
	return n, nil
}

func (d *Dispatcher) deliver(conn *Connection, n Notification) {
	if err := conn.Send(n); err != nil {
		d.metrics.recordSendError()
		d.log.Warn("notification send failed",
			zap.String("connection_id", conn.ID),
			zap.String("notification_id", n.ID),
			zap.Error(err))
	}
}
