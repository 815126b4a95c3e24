package pkg

// ModuleName tags log entries emitted by the chat module.
const ModuleName = "chat"
