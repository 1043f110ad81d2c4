package components

// ModalComponent 模态遮罩状态
type ModalComponent struct {
	IsVisible bool
}

// PopupState 弹出提示的阶段
type PopupState int

const (
	PopupHidden PopupState = iota
	PopupShowing           // 淡入中
	PopupOnScreen          // 停留中（按帧计时）
	PopupHiding            // 淡出中
)

func (s PopupState) String() string {
	switch s {
	case PopupShowing:
		return "showing"
	case PopupOnScreen:
		return "on_screen"
	case PopupHiding:
		return "hiding"
	default:
		return "hidden"
	}
}

// PopupComponent 弹出提示状态
type PopupComponent struct {
	State PopupState
	// RemainingTicks 停留阶段剩余帧数
	RemainingTicks int
	Message        string
}

// CounterComponent 结算计数器状态
type CounterComponent struct {
	From, To float64
	Record   float64
	// Displayed 当前显示的整数（floor 之后）
	Displayed int64
	Running   bool
	NewRecord bool
}
