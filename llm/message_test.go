package llm

import "testing"

func TestRole_String(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want string
	}{
		{"system", RoleSystem, "system"},
		{"user", RoleUser, "user"},
		{"assistant", RoleAssistant, "assistant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.String(); got != tt.want {
				t.Errorf("Role.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRole_IsValid(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{"system valid", RoleSystem, true},
		{"user valid", RoleUser, true},
		{"assistant valid", RoleAssistant, true},
		{"empty invalid", Role(""), false},
		{"unknown invalid", Role("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.IsValid(); got != tt.want {
				t.Errorf("Role.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessage_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		message Message
		want    bool
	}{
		{
			name: "valid system message",
			message: Message{
				Role:    RoleSystem,
				Content: "You are a helpful assistant",
			},
			want: true,
		},
		{
			name: "valid user message",
			message: Message{
				Role:    RoleUser,
				Content: "Hello",
			},
			want: true,
		},
		{
			name: "valid assistant message",
			message: Message{
				Role:    RoleAssistant,
				Content: "Hello! How can I help?",
			},
			want: true,
		},
		{
			name: "invalid user message - empty content",
			message: Message{
				Role:    RoleUser,
				Content: "",
			},
			want: false,
		},
		{
			name: "invalid assistant message - empty content",
			message: Message{
				Role: RoleAssistant,
			},
			want: false,
		},
		{
			name: "invalid role",
			message: Message{
				Role:    Role("invalid"),
				Content: "test",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.message.IsValid(); got != tt.want {
				t.Errorf("Message.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}
