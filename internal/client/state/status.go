// Package state 持有客戶端的同步狀態：食譜集合、單筆明細、
// 各操作的進行狀態，以及登入會話。所有轉移都經由本套件的操作完成。
package state

// Phase 操作階段
type Phase int

const (
	// Idle 無進行中的操作
	Idle Phase = iota
	// Pending 操作進行中
	Pending
	// Failed 上一次操作失敗
	Failed
)

// Status 單一操作種類的狀態，各種類彼此獨立
type Status struct {
	Phase   Phase
	Message string // 失敗時的人類可讀訊息
}

// begin 進入 pending 並清除前次錯誤
func (s *Status) begin() {
	s.Phase = Pending
	s.Message = ""
}

// succeed 回到 idle
func (s *Status) succeed() {
	s.Phase = Idle
	s.Message = ""
}

// fail 記下錯誤訊息，fallback 用於空訊息
func (s *Status) fail(msg, fallback string) {
	s.Phase = Failed
	if msg == "" {
		msg = fallback
	}
	s.Message = msg
}

// IsPending 是否進行中
func (s Status) IsPending() bool {
	return s.Phase == Pending
}

// Err 失敗訊息，非失敗時為空字串
func (s Status) Err() string {
	if s.Phase != Failed {
		return ""
	}
	return s.Message
}
